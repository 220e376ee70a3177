// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logman

import (
	"github.com/mia-platform/logman/internal/sink"
)

// callOptions collects the per-call overrides applied during dispatch.
type callOptions struct {
	save   bool
	format sink.Format
}

// CallOption customizes a single logging call.
type CallOption func(*callOptions)

// WithSave forces persistence for this call even when the severity defaults
// to console only. There is no option to turn persistence off.
func WithSave() CallOption {
	return func(o *callOptions) {
		o.save = true
	}
}

// WithFormat overrides the manager default format for this call only.
func WithFormat(format sink.Format) CallOption {
	return func(o *callOptions) {
		o.format = format
	}
}

// applyCallOptions resolves the provided options into their effective values.
func applyCallOptions(opts []CallOption) callOptions {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return options
}
