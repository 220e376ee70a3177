// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logman/internal/sink"
)

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "csv")
	writer := NewWriter(directory)

	timestamp := time.Date(2025, time.March, 9, 18, 4, 5, 0, time.Local)
	records := []*sink.Record{
		{Timestamp: timestamp, Level: sink.Error, Message: "disk full"},
		{Timestamp: timestamp.Add(time.Second), Level: sink.Error, Message: "still full"},
		{Timestamp: timestamp.Add(2 * time.Second), Level: sink.Error, Message: "recovered"},
	}

	for _, record := range records {
		require.NoError(t, writer.WriteRecord(t.Context(), record))
	}

	rows := readCSV(t, filepath.Join(directory, "error.csv"))
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, []string{"timestamp", "level", "message"}, rows[0])
	for i, record := range records {
		expected := []string{
			record.Timestamp.Format("2006-01-02 15:04:05"),
			"ERROR",
			record.Message,
		}
		assert.Equal(t, expected, rows[i+1])
	}
}

func TestHeaderOnlyOnFirstWrite(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "csv")

	// a second writer on the same directory must not duplicate the header
	first := NewWriter(directory)
	second := NewWriter(directory)
	require.NoError(t, first.WriteRecord(t.Context(), sink.NewRecord(sink.Warning, "one")))
	require.NoError(t, second.WriteRecord(t.Context(), sink.NewRecord(sink.Warning, "two")))

	rows := readCSV(t, filepath.Join(directory, "warning.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "level", "message"}, rows[0])
	assert.Equal(t, "one", rows[1][2])
	assert.Equal(t, "two", rows[2][2])
}

func TestMessagesAreQuoted(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "csv")
	writer := NewWriter(directory)

	messages := []string{
		`contains, a delimiter`,
		`contains "quotes"`,
		"contains\na newline",
	}
	for _, message := range messages {
		require.NoError(t, writer.WriteRecord(t.Context(), sink.NewRecord(sink.Critical, message)))
	}

	rows := readCSV(t, filepath.Join(directory, "critical.csv"))
	require.Len(t, rows, len(messages)+1)
	for i, message := range messages {
		assert.Equal(t, message, rows[i+1][2])
	}
}

func TestSeparateFilePerSeverity(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "csv")
	writer := NewWriter(directory)

	for _, severity := range sink.Severities() {
		require.NoError(t, writer.WriteRecord(t.Context(), sink.NewRecord(severity, "message")))
	}

	for _, severity := range sink.Severities() {
		rows := readCSV(t, filepath.Join(directory, severity.String()+".csv"))
		require.Len(t, rows, 2)
		assert.Equal(t, severity.Upper(), rows[1][1])
	}
}

func TestWriteFailureIsReported(t *testing.T) {
	t.Parallel()

	// a regular file where the directory should be makes MkdirAll fail
	blocking := filepath.Join(t.TempDir(), "blocking")
	require.NoError(t, os.WriteFile(blocking, []byte("occupied"), 0o644))

	writer := NewWriter(filepath.Join(blocking, "csv"))
	err := writer.WriteRecord(t.Context(), sink.NewRecord(sink.Error, "lost"))

	var writeErr *sink.WriteError
	require.ErrorAs(t, err, &writeErr)
}

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "csv")
	writer := NewWriter(directory)

	// write the header first so the existence race is out of the picture
	require.NoError(t, writer.WriteRecord(t.Context(), sink.NewRecord(sink.Error, "first")))

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(i int) {
			record := sink.NewRecord(sink.Error, fmt.Sprintf("message %d", i))
			done <- writer.WriteRecord(t.Context(), record)
		}(i)
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	rows := readCSV(t, filepath.Join(directory, "error.csv"))
	assert.Len(t, rows, 12) // header + first + 10 concurrent rows
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}
