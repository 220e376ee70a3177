// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSeverity reports a severity name outside the supported set.
	ErrUnknownSeverity = errors.New("unknown severity")
	// ErrUnknownFormat reports a format name outside the supported set.
	ErrUnknownFormat = errors.New("unknown format")
)

// WriteError signals that a single record could not be delivered to its sink.
// It carries the target path when the sink is file backed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("writing record: %v", e.Err)
	}

	return fmt.Sprintf("writing record to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
