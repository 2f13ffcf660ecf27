// Package download provides the ability to copy the files of a collection
// matching filters via the `fcollections download` command.
package download

import (
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName = "download"

	DestFlagName      = "dest"
	OverwriteFlagName = "overwrite"
	FormatFlagName    = "format"
	NoDedupFlagName   = "no-dedup"
)

func NewFlags(opts *Options) []cli.Flag {
	return append(common.NewDatabaseFlags(opts.DatabaseOptions),
		&cli.StringFlag{
			Name:        DestFlagName,
			Aliases:     []string{"o"},
			EnvVars:     flags.EnvVars(DestFlagName),
			Destination: &opts.Dest,
			Usage:       "Directory receiving the files. The folders below the collection root are kept.",
			Required:    true,
		},
		&cli.BoolFlag{
			Name:        OverwriteFlagName,
			Destination: &opts.Overwrite,
			Usage:       "Replace the files already present in the destination.",
		},
		&cli.BoolFlag{
			Name:        NoDedupFlagName,
			Destination: &opts.NoDedup,
			Usage:       "Copy every version of duplicated files.",
		},
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars(FormatFlagName),
			Destination: &opts.Format,
			Usage:       "Output format of the report. Valid values: text, json, yaml.",
			Value:       common.FormatText,
		},
	)
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Copy the matching files into a local directory.",
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
