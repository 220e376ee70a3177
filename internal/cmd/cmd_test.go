// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/mia-platform/logman/internal/sink"
)

func TestEmitCmdArgumentHandling(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		cmd           *cobra.Command
		args          []string
		expectedError error
		expectedUsage bool
	}{
		"no arguments returns no error and print usage": {
			cmd:           EmitCmd(),
			args:          []string{},
			expectedUsage: true,
		},
		"unknown severity return error and print usage": {
			cmd:           EmitCmd(),
			args:          []string{"notice", "a message"},
			expectedError: sink.ErrUnknownSeverity,
			expectedUsage: true,
		},
		"missing message return error and print usage": {
			cmd:           EmitCmd(),
			args:          []string{"error"},
			expectedError: errNoMessage,
			expectedUsage: true,
		},
		"unknown format return error": {
			cmd:           EmitCmd(),
			args:          []string{"error", "a message", "--" + formatFlagName, "xml"},
			expectedError: sink.ErrUnknownFormat,
		},
		"missing settings file return error": {
			cmd:           EmitCmd(),
			args:          []string{"error", "a message", "--" + settingsFlagName, filepath.Join("testdata", "missing")},
			expectedError: syscall.ENOENT,
		},
		"demo command with missing settings file return error": {
			cmd:           DemoCmd(),
			args:          []string{"--" + settingsFlagName, filepath.Join("testdata", "missing")},
			expectedError: syscall.ENOENT,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			errBuffer := new(bytes.Buffer)
			outBuffer := new(bytes.Buffer)
			test.cmd.SetOut(outBuffer)
			test.cmd.SetErr(errBuffer)
			test.cmd.SetUsageTemplate("usage string")
			test.cmd.SetArgs(test.args)

			err := test.cmd.ExecuteContext(t.Context())
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				assert.NotEmpty(t, errBuffer.String())
			} else {
				assert.NoError(t, err)
				assert.Empty(t, errBuffer)
			}

			if test.expectedUsage {
				assert.Contains(t, outBuffer.String(), "usage string")
			}
		})
	}
}

func TestEmitCmdWritesRecords(t *testing.T) {
	t.Parallel()

	t.Run("persisted severity with default format", func(t *testing.T) {
		t.Parallel()

		directory := t.TempDir()
		cmd := EmitCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"error", "disk", "full", "--" + logDirFlagName, directory})

		assert.NoError(t, cmd.ExecuteContext(t.Context()))
		assert.FileExists(t, filepath.Join(directory, "json", "error.json"))
	})

	t.Run("console only severity persisted with overrides", func(t *testing.T) {
		t.Parallel()

		directory := t.TempDir()
		cmd := EmitCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{
			"debug", "trace x=1",
			"--" + logDirFlagName, directory,
			"--" + saveFlagName,
			"--" + formatFlagName, "csv",
		})

		assert.NoError(t, cmd.ExecuteContext(t.Context()))
		assert.FileExists(t, filepath.Join(directory, "csv", "debug.csv"))
		assert.NoFileExists(t, filepath.Join(directory, "json", "debug.json"))
	})

	t.Run("asynchronous convention produces the same layout", func(t *testing.T) {
		t.Parallel()

		directory := t.TempDir()
		cmd := EmitCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{
			"warning", "a warning message",
			"--" + logDirFlagName, directory,
			"--" + asyncFlagName,
		})

		assert.NoError(t, cmd.ExecuteContext(t.Context()))
		assert.FileExists(t, filepath.Join(directory, "json", "warning.json"))
	})
}

func TestDemoCmdRejectsArguments(t *testing.T) {
	t.Parallel()

	errBuffer := new(bytes.Buffer)
	cmd := DemoCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(errBuffer)
	cmd.SetArgs([]string{"foo"})

	err := cmd.ExecuteContext(t.Context())
	assert.Error(t, err)
	assert.Contains(t, errBuffer.String(), "accepts 0 arg(s)")
	assert.NotContains(t, errBuffer.String(), "unknown severity")
}

func TestDemoCmdWritesShowcase(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	outBuffer := new(bytes.Buffer)
	cmd := DemoCmd()
	cmd.SetOut(outBuffer)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--" + logDirFlagName, directory})

	assert.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.FileExists(t, filepath.Join(directory, "json", "debug.json"))
	assert.FileExists(t, filepath.Join(directory, "json", "info.json"))
	assert.FileExists(t, filepath.Join(directory, "json", "warning.json"))
	assert.FileExists(t, filepath.Join(directory, "json", "error.json"))
	assert.FileExists(t, filepath.Join(directory, "json", "critical.json"))
	assert.FileExists(t, filepath.Join(directory, "csv", "warning.csv"))
	assert.FileExists(t, filepath.Join(directory, "csv", "error.csv"))

	assert.Contains(t, outBuffer.String(), "This is a debug message")
	assert.Contains(t, outBuffer.String(), "This is a critical message")
}
