// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package jsonfile persists log records as per-severity JSON-Lines files.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mia-platform/logman/internal/sink"
)

var _ sink.Writer = &jsonWriter{}

// entry is the on-disk shape of a single JSON-Lines record.
type entry struct {
	Timestamp  string `json:"timestamp"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	LoggerName string `json:"logger_name"`
	ProcessID  int    `json:"process_id"`
}

type jsonWriter struct {
	directory  string
	loggerName string
}

// NewWriter returns a writer that appends one JSON object per line to
// {directory}/{level}.json, creating the directory on first use. Records are
// enriched with loggerName and the OS process id. Every call is an
// independent open, append and close cycle, no file handle outlives a call.
func NewWriter(directory, loggerName string) sink.Writer {
	return &jsonWriter{
		directory:  directory,
		loggerName: loggerName,
	}
}

func (w *jsonWriter) WriteRecord(_ context.Context, record *sink.Record) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return &sink.WriteError{Path: w.directory, Err: err}
	}

	path := filepath.Join(w.directory, record.Level.String()+".json")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &sink.WriteError{Path: path, Err: err}
	}

	encoder := json.NewEncoder(file)
	err = encoder.Encode(entry{
		Timestamp:  record.Timestamp.Format(time.RFC3339),
		Level:      record.Level.Upper(),
		Message:    record.Message,
		LoggerName: w.loggerName,
		ProcessID:  os.Getpid(),
	})
	if err != nil {
		_ = file.Close()
		return &sink.WriteError{Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &sink.WriteError{Path: path, Err: err}
	}

	return nil
}
