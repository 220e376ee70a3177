// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logman

import "errors"

var (
	// ErrConfiguration reports an invalid manager configuration or a target
	// directory that cannot be created. Fatal at construction.
	ErrConfiguration = errors.New("invalid manager configuration")
	// ErrClosed reports an asynchronous call on a closed manager.
	ErrClosed = errors.New("log manager is closed")
)
