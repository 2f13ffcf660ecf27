// Package list provides the ability to list the files of a collection matching
// filters via the `fcollections list` command.
package list

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName  = "list"
	CommandAlias = "ls"

	FormatFlagName  = "format"
	StatFlagName    = "stat"
	NoDedupFlagName = "no-dedup"
	NoUnmixFlagName = "no-unmix"
)

func NewFlags(opts *Options) []cli.Flag {
	return append(common.NewDatabaseFlags(opts.DatabaseOptions),
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars(FormatFlagName),
			Destination: &opts.Format,
			Usage:       "Output format for list results. Valid values: text, json, yaml, tree.",
			Value:       common.FormatText,
		},
		&cli.StringSliceFlag{
			Name:        StatFlagName,
			Destination: &opts.Stats,
			Usage:       "Adds a stat column to the results: " + strings.Join(record.StatFields, ", ") + ". Can be repeated or comma separated.",
		},
		&cli.BoolFlag{
			Name:        NoDedupFlagName,
			EnvVars:     flags.EnvVars(NoDedupFlagName),
			Destination: &opts.NoDedup,
			Usage:       "Keep every version of duplicated files.",
		},
		&cli.BoolFlag{
			Name:        NoUnmixFlagName,
			EnvVars:     flags.EnvVars(NoUnmixFlagName),
			Destination: &opts.NoUnmix,
			Usage:       "Allow results mixing several subsets of the product.",
		},
	)
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Aliases:   []string{CommandAlias},
		Usage:     "List the files of a collection matching filters.",
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
