// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"context"
)

// Writer delivers a single record to a sink. Implementations must tolerate
// concurrent calls; each call is an independent write with no state carried
// across calls.
type Writer interface {
	WriteRecord(ctx context.Context, record *Record) error
}
