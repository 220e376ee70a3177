// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/mia-platform/logman/internal/sink"
)

const timestampLayout = "01/02/06 15:04:05"

var _ sink.Writer = &consoleSink{}

// styles maps every severity to its terminal style. Severities outside the
// map fall back to defaultStyle.
var styles = map[sink.Severity]*color.Color{
	sink.Debug:    color.New(color.FgCyan),
	sink.Info:     color.New(color.FgGreen),
	sink.Warning:  color.New(color.FgYellow),
	sink.Error:    color.New(color.FgRed),
	sink.Critical: color.New(color.FgRed, color.Bold),
}

var defaultStyle = color.New(color.FgWhite)

type consoleSink struct {
	writer io.Writer

	lock sync.Mutex
}

// NewSink returns a sink that renders records as styled single lines on w.
// Passing nil uses the process standard output with terminal detection.
func NewSink(w io.Writer) sink.Writer {
	if w == nil {
		w = color.Output
	}

	return &consoleSink{
		writer: w,
	}
}

func (s *consoleSink) WriteRecord(_ context.Context, record *sink.Record) error {
	// pad before styling so the escape sequences don't count against the width
	label := styleFor(record.Level).Sprint(fmt.Sprintf("%-8s", record.Level.Upper()))
	line := fmt.Sprintf("[%s] | %s | %s\n", record.Timestamp.Format(timestampLayout), label, record.Message)

	s.lock.Lock()
	defer s.lock.Unlock()
	if _, err := io.WriteString(s.writer, line); err != nil {
		return &sink.WriteError{Err: err}
	}

	return nil
}

// styleFor returns the style associated with level.
func styleFor(level sink.Severity) *color.Color {
	if style, ok := styles[level]; ok {
		return style
	}

	return defaultStyle
}
