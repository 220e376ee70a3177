// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package csvfile persists log records as per-severity CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mia-platform/logman/internal/sink"
)

const timestampLayout = "2006-01-02 15:04:05"

// header is written exactly once, when the per-severity file is created.
var header = []string{"timestamp", "level", "message"}

var _ sink.Writer = &csvWriter{}

type csvWriter struct {
	directory string
}

// NewWriter returns a writer that appends records to {directory}/{level}.csv,
// creating the directory and the file header on first use. Every call is an
// independent open, append and close cycle, no file handle outlives a call.
func NewWriter(directory string) sink.Writer {
	return &csvWriter{
		directory: directory,
	}
}

func (w *csvWriter) WriteRecord(_ context.Context, record *sink.Record) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return &sink.WriteError{Path: w.directory, Err: err}
	}

	path := filepath.Join(w.directory, record.Level.String()+".csv")

	// The existence check and the append below are not atomic: two writers
	// racing on the first write to a severity can both observe a missing file
	// and both emit the header. Accepted behavior, see the package tests.
	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &sink.WriteError{Path: path, Err: err}
	}

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(header); err != nil {
			_ = file.Close()
			return &sink.WriteError{Path: path, Err: err}
		}
	}

	row := []string{
		record.Timestamp.Format(timestampLayout),
		record.Level.Upper(),
		record.Message,
	}
	if err := writer.Write(row); err != nil {
		_ = file.Close()
		return &sink.WriteError{Path: path, Err: err}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return &sink.WriteError{Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &sink.WriteError{Path: path, Err: err}
	}

	return nil
}
