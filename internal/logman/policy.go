// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logman

import (
	"github.com/mia-platform/logman/internal/sink"
)

// Policy decides which severities are persisted without a per-call override.
type Policy map[sink.Severity]bool

// DefaultPolicy returns the fixed persistence table: warning and above are
// persisted, debug and info reach only the console. A per-call save override
// can force persistence on, never off, so warning-or-above records cannot be
// silently lost through caller error.
func DefaultPolicy() Policy {
	return Policy{
		sink.Debug:    false,
		sink.Info:     false,
		sink.Warning:  true,
		sink.Error:    true,
		sink.Critical: true,
	}
}
