// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	emitCmdUsageTemplate = "emit [%s] MESSAGE..."
	emitCmdShort         = "log a single message at the given severity"
	emitCmdLong          = `Log a single message at the given severity.
	The message is always rendered on the console; warning, error and critical
	records are also appended to a per-severity file under the configured log
	directory. Use --save to persist debug and info records too, and --format
	to pick the serialization for this record only.`

	emitCmdExample = `# Log an error, persisted as JSON-Lines under the default directory
	logman emit error "disk full"

	# Persist a debug record as CSV in a custom directory
	logman emit debug "trace x=1" --save --format csv --log-dir /tmp/logs`

	demoCmdUsage = "demo"
	demoCmdShort = "showcase every severity, convention and override"
	demoCmdLong  = `Showcase every severity, convention and override.
	Walks the five severities through the asynchronous and blocking calling
	conventions, forcing persistence and the CSV format on a few records, so
	the resulting console output and file layout can be inspected.`

	demoCmdExample = `# Run the showcase against a scratch directory
	logman demo --log-dir /tmp/logs`
)

// EmitCmd returns the Cobra command that logs a single record.
func EmitCmd() *cobra.Command {
	flags := &flags{}
	allSeverities := slices.Sorted(maps.Keys(availableSeverities))
	cmd := &cobra.Command{
		Use:     fmt.Sprintf(emitCmdUsageTemplate, strings.Join(allSeverities, "|")),
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc(availableSeverities),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executeEmit(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// DemoCmd returns the Cobra command that runs the logging showcase.
func DemoCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     demoCmdUsage,
		Short:   heredoc.Doc(demoCmdShort),
		Long:    heredoc.Doc(demoCmdLong),
		Example: heredoc.Doc(demoCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.executeDemo(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
