// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logman

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mia-platform/logman/internal/config"
	"github.com/mia-platform/logman/internal/sink"
	"github.com/mia-platform/logman/internal/sink/console"
	"github.com/mia-platform/logman/internal/sink/csvfile"
	"github.com/mia-platform/logman/internal/sink/jsonfile"
)

const (
	loggerName = "logman"

	jsonSubdirectory = "json"
	csvSubdirectory  = "csv"
)

// fileWriters builds the per-format writers rooted at directory.
// It can be overridden for testing purposes.
var fileWriters = defaultFileWriters

// Config holds the immutable settings of a Manager.
type Config struct {
	// Directory is the root for the json/ and csv/ subdirectories.
	// Empty uses the process-wide default log directory.
	Directory string
	// DefaultFormat is used when a call carries no format override.
	// Empty means JSON.
	DefaultFormat sink.Format
	// Console receives the rendered console lines. Nil uses the process
	// standard output.
	Console io.Writer
}

// Manager dispatches every logging call to the console and, when the
// persistence policy or a per-call override requires it, to exactly one file
// writer. All configuration is fixed at construction.
type Manager struct {
	directory     string
	defaultFormat sink.Format
	policy        Policy
	console       sink.Writer
	writers       map[sink.Format]sink.Writer

	jobs       chan *job
	quit       chan struct{}
	workerDone chan struct{}
	closeOnce  sync.Once
}

// job carries one asynchronous call to the manager worker.
type job struct {
	level   sink.Severity
	message string
	options callOptions
	done    chan error
}

// New validates config, creates the target directory when missing and starts
// the manager worker. A directory that cannot be created is fatal, the
// manager could not guarantee any write path afterwards.
func New(cfg Config) (*Manager, error) {
	directory := cfg.Directory
	if directory == "" {
		directory = config.DefaultDirectory()
	}

	format := cfg.DefaultFormat
	if format == "" {
		format = sink.FormatJSON
	}
	if format != sink.FormatJSON && format != sink.FormatCSV {
		return nil, fmt.Errorf("%w: unsupported default format %q", ErrConfiguration, format)
	}

	created, err := ensureDirectory(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, err.Error())
	}

	manager := &Manager{
		directory:     directory,
		defaultFormat: format,
		policy:        DefaultPolicy(),
		console:       console.NewSink(cfg.Console),
		writers:       fileWriters(directory),

		jobs:       make(chan *job),
		quit:       make(chan struct{}),
		workerDone: make(chan struct{}),
	}

	if created {
		notice := sink.NewRecord(sink.Info, "created log directory "+directory)
		_ = manager.console.WriteRecord(context.Background(), notice)
	}

	go manager.run()
	return manager, nil
}

// Close stops the manager worker after the in-flight asynchronous call, if
// any, has completed. Further asynchronous calls fail with ErrClosed, the
// blocking convention keeps working.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.quit)
	})

	<-m.workerDone
}

// Debug logs a debug message on the calling goroutine.
func (m *Manager) Debug(message string, opts ...CallOption) error {
	return m.dispatch(sink.Debug, message, applyCallOptions(opts))
}

// Info logs an informational message on the calling goroutine.
func (m *Manager) Info(message string, opts ...CallOption) error {
	return m.dispatch(sink.Info, message, applyCallOptions(opts))
}

// Warning logs a warning message on the calling goroutine.
func (m *Manager) Warning(message string, opts ...CallOption) error {
	return m.dispatch(sink.Warning, message, applyCallOptions(opts))
}

// Error logs an error message on the calling goroutine.
func (m *Manager) Error(message string, opts ...CallOption) error {
	return m.dispatch(sink.Error, message, applyCallOptions(opts))
}

// Critical logs a critical message on the calling goroutine.
func (m *Manager) Critical(message string, opts ...CallOption) error {
	return m.dispatch(sink.Critical, message, applyCallOptions(opts))
}

// DebugAsync logs a debug message on the manager worker.
func (m *Manager) DebugAsync(message string, opts ...CallOption) error {
	return m.submit(sink.Debug, message, applyCallOptions(opts))
}

// InfoAsync logs an informational message on the manager worker.
func (m *Manager) InfoAsync(message string, opts ...CallOption) error {
	return m.submit(sink.Info, message, applyCallOptions(opts))
}

// WarningAsync logs a warning message on the manager worker.
func (m *Manager) WarningAsync(message string, opts ...CallOption) error {
	return m.submit(sink.Warning, message, applyCallOptions(opts))
}

// ErrorAsync logs an error message on the manager worker.
func (m *Manager) ErrorAsync(message string, opts ...CallOption) error {
	return m.submit(sink.Error, message, applyCallOptions(opts))
}

// CriticalAsync logs a critical message on the manager worker.
func (m *Manager) CriticalAsync(message string, opts ...CallOption) error {
	return m.submit(sink.Critical, message, applyCallOptions(opts))
}

// run processes asynchronous calls one at a time until Close is called.
func (m *Manager) run() {
	defer close(m.workerDone)
	for {
		select {
		case current := <-m.jobs:
			current.done <- m.dispatch(current.level, current.message, current.options)
		case <-m.quit:
			return
		}
	}
}

// submit hands a call to the manager worker and waits for its completion, so
// the calling goroutine never performs the console or file I/O itself.
func (m *Manager) submit(level sink.Severity, message string, options callOptions) error {
	current := &job{
		level:   level,
		message: message,
		options: options,
		done:    make(chan error, 1),
	}

	select {
	case m.jobs <- current:
		return <-current.done
	case <-m.quit:
		return ErrClosed
	}
}

// dispatch runs the console-then-persist sequence shared by both calling
// conventions. The console write never prevents the file write, its error is
// reported together with the persistence outcome.
func (m *Manager) dispatch(level sink.Severity, message string, options callOptions) error {
	ctx := context.Background()
	record := sink.NewRecord(level, message)

	consoleErr := m.console.WriteRecord(ctx, record)

	if !m.policy[level] && !options.save {
		return consoleErr
	}

	format := m.defaultFormat
	if options.format != "" {
		format = options.format
	}

	writer, ok := m.writers[format]
	if !ok {
		return errors.Join(consoleErr, fmt.Errorf("%w: unsupported format %q", ErrConfiguration, format))
	}

	return errors.Join(consoleErr, writer.WriteRecord(ctx, record))
}

// ensureDirectory creates directory when missing and reports whether it did.
// A path occupied by a regular file is rejected here, later writes could
// never succeed against it.
func ensureDirectory(directory string) (bool, error) {
	info, err := os.Stat(directory)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%q is not a directory", directory)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	return true, os.MkdirAll(directory, 0o755)
}

// defaultFileWriters returns the production writers for directory.
func defaultFileWriters(directory string) map[sink.Format]sink.Writer {
	return map[sink.Format]sink.Writer{
		sink.FormatJSON: jsonfile.NewWriter(filepath.Join(directory, jsonSubdirectory), loggerName),
		sink.FormatCSV:  csvfile.NewWriter(filepath.Join(directory, csvSubdirectory)),
	}
}
