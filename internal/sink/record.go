// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"fmt"
	"strings"
	"time"
)

// Severity represents the importance of a log record.
type Severity int

const (
	// Debug is for verbose diagnostic messages.
	Debug Severity = iota
	// Info is for normal operational messages.
	Info
	// Warning is for unexpected conditions that don't prevent operation.
	Warning
	// Error is for failures that affect functionality.
	Error
	// Critical is for failures that require immediate attention.
	Critical
)

// String returns the lowercase name of the severity, used also as the
// basename of its per-level files.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Upper returns the uppercase label written in persisted records.
func (s Severity) Upper() string {
	return strings.ToUpper(s.String())
}

// ParseSeverity parses a case-insensitive severity name.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warning, nil
	case "error":
		return Error, nil
	case "critical":
		return Critical, nil
	}

	return Info, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
}

// Severities returns all severities in ascending order of importance.
func Severities() []Severity {
	return []Severity{Debug, Info, Warning, Error, Critical}
}

// Format selects the serialization used for persisted records.
type Format string

const (
	// FormatJSON persists records as JSON-Lines files.
	FormatJSON Format = "json"
	// FormatCSV persists records as CSV files.
	FormatCSV Format = "csv"
)

// ParseFormat parses a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}

	return FormatJSON, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Record bundles the data captured by a single logging call. It is never
// mutated after creation and is not retained after being dispatched.
type Record struct {
	Timestamp time.Time
	Level     Severity
	Message   string
}

// NewRecord returns a record for level and message stamped with the current time.
func NewRecord(level Severity, message string) *Record {
	return &Record{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
}
