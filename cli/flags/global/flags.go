// Package global provides CLI global flags.
package global

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

const (
	ConfigFlagName    = "config"
	LogLevelFlagName  = "log-level"
	LogFormatFlagName = "log-format"
	WorkersFlagName   = "workers"
	NoColorFlagName   = "no-color"
)

// NewFlags returns the flags accepted by every command.
func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        ConfigFlagName,
			EnvVars:     flags.EnvVars(ConfigFlagName),
			Destination: &opts.ConfigPath,
			Usage:       "Path to the catalog config file. Defaults to the first fcollections.hcl found from the working directory up to the repository root, then in the user config directories.",
		},
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     flags.EnvVars(LogLevelFlagName),
			Destination: &opts.LogLevel,
			Usage:       "Sets the logging level: " + log.AllLevels.String() + ".",
			DefaultText: options.DefaultLogLevel.String(),
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     flags.EnvVars(LogFormatFlagName),
			Destination: &opts.LogFormat,
			Usage:       "Sets the logging format: " + strings.Join(log.AllFormatNames, ", ") + ".",
			DefaultText: options.DefaultLogFormat,
		},
		&cli.IntFlag{
			Name:        WorkersFlagName,
			EnvVars:     flags.EnvVars(WorkersFlagName),
			Destination: &opts.Workers,
			Usage:       "Number of directories listed in parallel.",
			DefaultText: "number of CPUs",
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     flags.EnvVars(NoColorFlagName),
			Destination: &opts.NoColor,
			Usage:       "Disables colored output.",
		},
	}
}
