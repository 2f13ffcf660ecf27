package list

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/options"
)

type Options struct {
	*common.DatabaseOptions

	// Format determines the format of the output.
	Format string

	// Stats are the stat columns added to the results.
	Stats cli.StringSlice

	// NoDedup keeps duplicated files.
	NoDedup bool

	// NoUnmix allows mixing subsets.
	NoUnmix bool
}

func NewOptions(opts *options.Options) *Options {
	return &Options{
		DatabaseOptions: common.NewDatabaseOptions(opts),
		Format:          common.FormatText,
	}
}

func (o *Options) Validate() error {
	errs := []error{}

	if err := common.ValidateFormat(o.Format, common.FormatText, common.FormatJSON, common.FormatYAML, common.FormatTree); err != nil {
		errs = append(errs, err)
	}

	if err := record.ValidateStatFields(o.StatFields()); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.New(errors.Join(errs...))
	}

	return nil
}

// StatFields returns the requested stat columns. A flag value may hold several
// comma separated names.
func (o *Options) StatFields() []string {
	var names []string

	for _, value := range o.Stats.Value() {
		for name := range strings.SplitSeq(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	return names
}
