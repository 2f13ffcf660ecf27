package discovery

import (
	"slices"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/pkg/log"
)

// WithLayouts sets the alternative layouts guiding the traversal. A branch is
// followed as long as one layout accepts it.
func (d *Discovery) WithLayouts(layouts ...*layout.Layout) *Discovery {
	d.layouts = slices.Clone(layouts)
	return d
}

// WithConvention sets the file convention used by unguided traversals. It defaults
// to the terminal convention of the first layout.
func (d *Discovery) WithConvention(c *convention.Convention) *Discovery {
	d.convention = c
	return d
}

// WithFilters sets the references the decoded values must satisfy.
func (d *Discovery) WithFilters(filters field.Filters) *Discovery {
	d.filters = filters.Clone()
	return d
}

// WithoutLayouts disables layout guidance: every directory is listed.
func (d *Discovery) WithoutLayouts() *Discovery {
	d.disableLayouts = true
	return d
}

// WithFollowSymlinks follows symbolic links to files and directories.
func (d *Discovery) WithFollowSymlinks() *Discovery {
	d.followSymlinks = true
	return d
}

// WithStatFields adds stat columns to the records, see record.StatFields.
func (d *Discovery) WithStatFields(names ...string) *Discovery {
	d.statFields = slices.Clone(names)
	return d
}

// WithStrict turns layout mismatches into errors.
func (d *Discovery) WithStrict() *Discovery {
	d.strict = true
	return d
}

// WithNumWorkers sets the number of concurrent directory listings.
func (d *Discovery) WithNumWorkers(numWorkers int) *Discovery {
	if numWorkers > 0 && numWorkers <= maxDiscoveryWorkers {
		d.numWorkers = numWorkers
	}

	return d
}

// WithLogger sets the logger receiving diagnostics.
func (d *Discovery) WithLogger(l log.Logger) *Discovery {
	d.logger = l
	return d
}
