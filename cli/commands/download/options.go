package download

import (
	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/options"
)

type Options struct {
	*common.DatabaseOptions

	// Dest is the destination directory.
	Dest string

	// Format determines the format of the report.
	Format string

	Overwrite bool
	NoDedup   bool
}

func NewOptions(opts *options.Options) *Options {
	return &Options{
		DatabaseOptions: common.NewDatabaseOptions(opts),
		Format:          common.FormatText,
	}
}

func (o *Options) Validate() error {
	errs := []error{}

	if o.Dest == "" {
		errs = append(errs, errors.New(common.MissingFlagError{Flag: DestFlagName}))
	}

	if err := common.ValidateFormat(o.Format, common.FormatText, common.FormatJSON, common.FormatYAML); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.New(errors.Join(errs...))
	}

	return nil
}
