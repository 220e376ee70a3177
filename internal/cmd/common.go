// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/logman/internal/sink"
)

var (
	errNoArguments = errors.New("no severity provided")
	errNoMessage   = errors.New("no message provided")

	// availableSeverities holds the list of severities and their description
	// for command completion and help messages.
	availableSeverities = map[string]string{
		"debug":    "verbose diagnostic messages, console only by default",
		"info":     "normal operational messages, console only by default",
		"warning":  "unexpected conditions, persisted by default",
		"error":    "failures that affect functionality, persisted by default",
		"critical": "failures that require immediate attention, persisted by default",
	}
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errNoMessage), errors.Is(err, sink.ErrUnknownSeverity):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(severities map[string]string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var comps []string
		if len(args) == 0 {
			for name, description := range severities {
				if strings.HasPrefix(name, toComplete) {
					comps = append(comps, cobra.CompletionWithDesc(name, description))
				}
			}
		}

		return comps, cobra.ShellCompDirectiveNoFileComp
	}
}
