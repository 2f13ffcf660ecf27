package products

import (
	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/options"
)

type Options struct {
	*options.Options

	// Format determines the format of the output.
	Format string

	// Names are the products to describe. All of them are listed when empty.
	Names []string
}

func NewOptions(opts *options.Options) *Options {
	return &Options{
		Options: opts,
		Format:  common.FormatText,
	}
}

func (o *Options) Validate() error {
	return common.ValidateFormat(o.Format, common.FormatText, common.FormatJSON, common.FormatYAML)
}
