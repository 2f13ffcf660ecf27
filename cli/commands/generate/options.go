package generate

import (
	"github.com/fcollections/fcollections/options"
)

type Options struct {
	*options.Options

	Product  string
	Database string
	Root     string
	Layout   string

	// Values are the `<field>=<value>` arguments.
	Values []string

	NoLayouts bool
}

func NewOptions(opts *options.Options) *Options {
	return &Options{Options: opts}
}
