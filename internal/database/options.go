package database

import (
	"slices"

	"github.com/fcollections/fcollections/internal/coverage"
	"github.com/fcollections/fcollections/internal/download"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/telemetry"
	"github.com/fcollections/fcollections/pkg/log"
)

// Option configures a Database.
type Option func(*Database)

// WithLayouts replaces the product layouts.
func WithLayouts(layouts ...*layout.Layout) Option {
	return func(db *Database) {
		db.layouts = slices.Clone(layouts)
	}
}

// WithoutLayouts lists every directory and matches files with the product
// convention only.
func WithoutLayouts() Option {
	return func(db *Database) {
		db.disableLayouts = true
	}
}

// WithFollowSymlinks follows symbolic links during discovery.
func WithFollowSymlinks() Option {
	return func(db *Database) {
		db.followSymlinks = true
	}
}

// WithStrict fails discovery on layout mismatches.
func WithStrict() Option {
	return func(db *Database) {
		db.strict = true
	}
}

// WithNumWorkers sets the number of concurrent directory listings. Values
// below 1 keep a single worker.
func WithNumWorkers(n int) Option {
	return func(db *Database) {
		db.numWorkers = max(n, 1)
	}
}

// WithReader sets the reader used by Query and Map.
func WithReader(reader Reader) Option {
	return func(db *Database) {
		db.reader = reader
	}
}

// WithCoverage sets the period analyzer. Products declaring a time field get
// one by default.
func WithCoverage(analyzer *coverage.Analyzer) Option {
	return func(db *Database) {
		db.coverage = analyzer
	}
}

// WithDownloader enables Download.
func WithDownloader(downloader *download.Downloader) Option {
	return func(db *Database) {
		db.downloader = downloader
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(db *Database) {
		db.logger = l
	}
}

// WithTelemeter sets the telemeter. It defaults to the telemeter of the
// operation context.
func WithTelemeter(tlm *telemetry.Telemeter) Option {
	return func(db *Database) {
		db.telemeter = tlm
	}
}

// ListOptions selects and post-processes the listed files.
type ListOptions struct {
	Filters field.Filters
	// StatFields adds stat columns, see record.StatFields.
	StatFields []string
	// Sort orders the records by the product sort keys.
	Sort bool
	// Deduplicate runs the product deduplicator.
	Deduplicate bool
	// Unmix runs the product unmixer.
	Unmix bool
}

// QueryOptions selects the files read by Query and Map. Records are always
// unmixed, deduplicated and sorted.
type QueryOptions struct {
	Filters field.Filters
}

func (opts QueryOptions) listOptions() ListOptions {
	return ListOptions{Filters: opts.Filters, Sort: true, Deduplicate: true, Unmix: true}
}
