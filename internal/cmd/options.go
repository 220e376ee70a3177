// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"sync"

	"github.com/mia-platform/logman/internal/logman"
	"github.com/mia-platform/logman/internal/sink"
)

// newManager builds the log manager used by the commands.
// It can be overridden for testing purposes.
var newManager = logman.New

// options configures a single record emission or a demo run.
type options struct {
	level        sink.Severity
	message      string
	save         bool
	format       sink.Format
	async        bool
	hasArguments bool

	managerConfig logman.Config

	lock sync.Mutex
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if !o.hasArguments {
		return errNoArguments
	}

	if o.message == "" {
		return errNoMessage
	}

	return nil
}

// executeEmit dispatches the configured record through the manager.
func (o *options) executeEmit(_ context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	manager, err := newManager(o.managerConfig)
	if err != nil {
		return err
	}
	defer manager.Close()

	return managerCall(manager, o.level, o.async)(o.message, o.callOptions()...)
}

// executeDemo walks every severity through both calling conventions and the
// per-call overrides, mirroring a typical integration of the manager.
func (o *options) executeDemo(_ context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	manager, err := newManager(o.managerConfig)
	if err != nil {
		return err
	}
	defer manager.Close()

	steps := []func() error{
		// default policy: debug and info reach only the console
		func() error { return manager.DebugAsync("This is a debug message") },
		func() error { return manager.InfoAsync("This is an info message") },
		func() error { return manager.WarningAsync("This is a warning message") },
		func() error { return manager.ErrorAsync("This is an error message") },
		func() error { return manager.CriticalAsync("This is a critical message") },
		// the save override persists console-only severities too
		func() error { return manager.DebugAsync("debug message kept on file", logman.WithSave()) },
		func() error { return manager.InfoAsync("info message kept on file", logman.WithSave()) },
		// per-call format override
		func() error {
			return manager.WarningAsync("warning stored as CSV", logman.WithSave(), logman.WithFormat(sink.FormatCSV))
		},
		func() error { return manager.ErrorAsync("error stored as CSV", logman.WithFormat(sink.FormatCSV)) },
		// the blocking convention produces the same records
		func() error { return manager.Info("blocking info message") },
		func() error { return manager.Info("blocking info message kept on file", logman.WithSave()) },
		func() error { return manager.Error("blocking error stored as CSV", logman.WithFormat(sink.FormatCSV)) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// callOptions translates the parsed flags into per-call manager options.
func (o *options) callOptions() []logman.CallOption {
	opts := make([]logman.CallOption, 0, 2)
	if o.save {
		opts = append(opts, logman.WithSave())
	}
	if o.format != "" {
		opts = append(opts, logman.WithFormat(o.format))
	}

	return opts
}

// managerCall selects the manager operation matching level and convention.
func managerCall(manager *logman.Manager, level sink.Severity, async bool) func(string, ...logman.CallOption) error {
	if async {
		switch level {
		case sink.Debug:
			return manager.DebugAsync
		case sink.Info:
			return manager.InfoAsync
		case sink.Warning:
			return manager.WarningAsync
		case sink.Error:
			return manager.ErrorAsync
		case sink.Critical:
			return manager.CriticalAsync
		}
	}

	switch level {
	case sink.Debug:
		return manager.Debug
	case sink.Warning:
		return manager.Warning
	case sink.Error:
		return manager.Error
	case sink.Critical:
		return manager.Critical
	default:
		return manager.Info
	}
}
