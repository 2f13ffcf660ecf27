// Package coverage provides the ability to report the time span covered by the
// files of a collection via the `fcollections coverage` command.
package coverage

import (
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName = "coverage"

	FormatFlagName  = "format"
	NoDedupFlagName = "no-dedup"
)

func NewFlags(opts *Options) []cli.Flag {
	return append(common.NewDatabaseFlags(opts.DatabaseOptions),
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars(FormatFlagName),
			Destination: &opts.Format,
			Usage:       "Output format. Valid values: text, json, yaml.",
			Value:       common.FormatText,
		},
		&cli.BoolFlag{
			Name:        NoDedupFlagName,
			EnvVars:     flags.EnvVars(NoDedupFlagName),
			Destination: &opts.NoDedup,
			Usage:       "Keep every version of duplicated files.",
		},
	)
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the period covered by the matching files and the holes between them.",
		ArgsUsage: " ",
		Flags:     NewFlags(opts),
		Action: func(cctx *cli.Context) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			return Run(cctx.Context, opts)
		},
	}
}
