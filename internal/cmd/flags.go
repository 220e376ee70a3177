// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/logman/internal/config"
	"github.com/mia-platform/logman/internal/logman"
	"github.com/mia-platform/logman/internal/sink"
)

const (
	logDirFlagName  = "log-dir"
	logDirFlagUsage = "Root directory for the json/ and csv/ log files. Overrides LOGMAN_DIR and the settings file."

	settingsFlagName  = "settings"
	settingsFlagShort = "s"
	settingsFlagUsage = "Path to a YAML or JSON settings file with the manager configuration."

	formatFlagName  = "format"
	formatFlagUsage = "Serialization used for this record only (json or csv). Overrides the default format."

	saveFlagName  = "save"
	saveFlagUsage = "Force persistence for this record even if its severity is console only by default."

	asyncFlagName  = "async"
	asyncFlagUsage = "Dispatch the record through the manager worker instead of the calling goroutine."
)

// flags collects the CLI options shared by the emit and demo commands.
type flags struct {
	logDir       string
	settingsPath string
	format       string
	save         bool
	async        bool
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.logDir, logDirFlagName, "", logDirFlagUsage)
	cmd.Flags().StringVarP(&f.settingsPath, settingsFlagName, settingsFlagShort, "", settingsFlagUsage)
	cmd.Flags().StringVar(&f.format, formatFlagName, "", formatFlagUsage)
	cmd.Flags().BoolVar(&f.save, saveFlagName, false, saveFlagUsage)
	cmd.Flags().BoolVar(&f.async, asyncFlagName, false, asyncFlagUsage)
}

// toOptions builds an options instance from the parsed flags and CLI arguments.
func (f *flags) toOptions(cmd *cobra.Command, args []string) (*options, error) {
	level := sink.Info
	message := ""
	if len(args) > 0 {
		parsed, err := sink.ParseSeverity(args[0])
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if len(args) > 1 {
		message = strings.Join(args[1:], " ")
	}

	managerConfig, err := f.managerConfig(cmd)
	if err != nil {
		return nil, err
	}

	formatOverride := sink.Format("")
	if f.format != "" {
		parsed, err := sink.ParseFormat(f.format)
		if err != nil {
			return nil, err
		}
		formatOverride = parsed
	}

	return &options{
		level:         level,
		message:       message,
		save:          f.save,
		format:        formatOverride,
		async:         f.async,
		hasArguments:  len(args) > 0,
		managerConfig: managerConfig,
	}, nil
}

// managerConfig resolves the manager configuration layering, from weakest to
// strongest: environment variables, settings file, CLI flags.
func (f *flags) managerConfig(cmd *cobra.Command) (logman.Config, error) {
	environment, err := config.LoadEnvironment()
	if err != nil {
		return logman.Config{}, err
	}

	directory := environment.Directory
	defaultFormat := environment.Format

	if f.settingsPath != "" {
		settings, err := config.NewSettingsFromPath(f.settingsPath)
		if err != nil {
			return logman.Config{}, err
		}

		if settings.Directory != "" {
			directory = settings.Directory
		}
		if settings.DefaultFormat != "" {
			defaultFormat = settings.DefaultFormat
		}
	}

	if f.logDir != "" {
		directory = f.logDir
	}

	format, err := sink.ParseFormat(defaultFormat)
	if err != nil {
		return logman.Config{}, err
	}

	return logman.Config{
		Directory:     directory,
		DefaultFormat: format,
		Console:       cmd.OutOrStdout(),
	}, nil
}
