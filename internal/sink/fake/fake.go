// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/mia-platform/logman/internal/sink"
)

var _ sink.Writer = &FakeWriter{}

// FakeWriter records every dispatched record for later inspection in tests.
// Set Err to make every call fail with that error.
type FakeWriter struct {
	tb  testing.TB
	Err error

	lock    sync.Mutex
	records []*sink.Record
}

func NewFakeWriter(tb testing.TB) *FakeWriter {
	tb.Helper()
	return &FakeWriter{tb: tb}
}

func (f *FakeWriter) WriteRecord(_ context.Context, record *sink.Record) error {
	f.tb.Helper()
	if f.Err != nil {
		return f.Err
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.records = append(f.records, record)
	return nil
}

// Records returns a copy of the records received so far.
func (f *FakeWriter) Records() []*sink.Record {
	f.lock.Lock()
	defer f.lock.Unlock()

	records := make([]*sink.Record, len(f.records))
	copy(records, f.records)
	return records
}
