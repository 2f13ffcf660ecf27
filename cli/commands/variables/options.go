package variables

import (
	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/options"
)

type Options struct {
	*common.DatabaseOptions

	// Format determines the format of the output.
	Format string
}

func NewOptions(opts *options.Options) *Options {
	return &Options{
		DatabaseOptions: common.NewDatabaseOptions(opts),
		Format:          common.FormatText,
	}
}

func (o *Options) Validate() error {
	return common.ValidateFormat(o.Format, common.FormatText, common.FormatJSON, common.FormatYAML)
}
