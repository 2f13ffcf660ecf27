// Package products provides the ability to describe the registered products
// via the `fcollections products` command.
package products

import (
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName = "products"

	FormatFlagName = "format"
)

func NewFlags(opts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars(FormatFlagName),
			Destination: &opts.Format,
			Usage:       "Output format. Valid values: text, json, yaml.",
			Value:       common.FormatText,
		},
	}
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "List the registered products, or describe the fields and layouts of the given ones.",
		ArgsUsage: "[product...]",
		Flags:     NewFlags(opts),
		Action: func(cctx *cli.Context) error {
			opts.Names = cctx.Args().Slice()

			if err := opts.Validate(); err != nil {
				return err
			}

			return Run(cctx.Context, opts)
		},
	}
}
