// Package generate provides the ability to render the path of a file from its
// field values via the `fcollections generate` command.
package generate

import (
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/options"
)

const (
	CommandName = "generate"

	LayoutFlagName = "layout"
)

func NewFlags(opts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        common.ProductFlagName,
			Aliases:     []string{"p"},
			EnvVars:     flags.EnvVars(common.ProductFlagName),
			Destination: &opts.Product,
			Usage:       "Product whose naming convention renders the path.",
		},
		&cli.StringFlag{
			Name:        common.DatabaseFlagName,
			Aliases:     []string{"d"},
			EnvVars:     flags.EnvVars(common.DatabaseFlagName),
			Destination: &opts.Database,
			Usage:       "Label of a database declared in the catalog config file, giving the product and the root.",
		},
		&cli.StringFlag{
			Name:        common.RootFlagName,
			EnvVars:     flags.EnvVars(common.RootFlagName),
			Destination: &opts.Root,
			Usage:       "Directory prefixed to the generated path.",
		},
		&cli.StringFlag{
			Name:        LayoutFlagName,
			Destination: &opts.Layout,
			Usage:       "Name of the product layout used to render the folders. Defaults to the first one.",
		},
		&cli.BoolFlag{
			Name:        common.NoLayoutsFlagName,
			Destination: &opts.NoLayouts,
			Usage:       "Render the file name only.",
		},
	}
}

func NewCommand(globalOpts *options.Options) *cli.Command {
	opts := NewOptions(globalOpts)

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Render the path of a file from the canonical text of its field values.",
		ArgsUsage: "<field>=<value>...",
		Flags:     NewFlags(opts),
		Action: func(cctx *cli.Context) error {
			opts.Values = cctx.Args().Slice()

			return Run(cctx.Context, opts)
		},
	}
}
