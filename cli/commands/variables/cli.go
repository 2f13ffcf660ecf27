// Package variables provides the ability to describe the subsets of a
// collection via the `fcollections variables` command.
package variables

import (
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName = "variables"

	FormatFlagName = "format"
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
	)
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Describe the subsets of the collection and the one selected by the partition filters.",
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
