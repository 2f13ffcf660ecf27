// Package database composes discovery, subset unmixing, deduplication and the
// optional capabilities of a product into a queryable files database.
package database

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/fcollections/fcollections/internal/coverage"
	"github.com/fcollections/fcollections/internal/discovery"
	"github.com/fcollections/fcollections/internal/download"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/period"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/telemetry"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/pkg/log"
)

// Database lists, resolves and reads the files of one product under a root.
// Every call walks the filesystem again, nothing is cached.
type Database struct {
	fs         vfs.FS
	reader     Reader
	logger     log.Logger
	product    *Product
	coverage   *coverage.Analyzer
	downloader *download.Downloader
	telemeter  *telemetry.Telemeter
	root       string
	layouts    []*layout.Layout
	numWorkers int

	disableLayouts bool
	followSymlinks bool
	strict         bool
}

// New returns a database of the product files found under root.
func New(fs vfs.FS, root string, product *Product, opts ...Option) (*Database, error) {
	if err := product.validate(); err != nil {
		return nil, err
	}

	db := &Database{
		fs:         fs,
		root:       root,
		product:    product,
		layouts:    slices.Clone(product.Layouts),
		numWorkers: 1,
		logger:     log.Default(),
	}

	for _, opt := range opts {
		opt(db)
	}

	if db.coverage == nil && product.TimeField != "" {
		db.coverage = coverage.New(product.TimeField)
	}

	exists, err := vfs.FileExists(fs, root)
	if err != nil {
		return nil, errors.New(err)
	}

	if !exists {
		return nil, NewNotExistingPathError(root)
	}

	return db, nil
}

// Product returns the product definition.
func (db *Database) Product() *Product {
	return db.product
}

// Root returns the root directory.
func (db *Database) Root() string {
	return db.root
}

// Coverage returns the period analyzer, if configured.
func (db *Database) Coverage() (*coverage.Analyzer, bool) {
	return db.coverage, db.coverage != nil
}

// Downloader returns the downloader, if configured.
func (db *Database) Downloader() (*download.Downloader, bool) {
	return db.downloader, db.downloader != nil
}

// ListFiles discovers the files matching the filters, then unmixes,
// deduplicates and sorts the records as requested.
func (db *Database) ListFiles(ctx context.Context, opts ListOptions) (*record.Table, error) {
	var table *record.Table

	attrs := map[string]any{"product": db.product.Name, "root": db.root}

	err := db.telemetry(ctx).Collect(ctx, "list_files", attrs, func(ctx context.Context) error {
		result, err := db.discover(ctx, opts.Filters, opts.StatFields)
		if err != nil {
			return err
		}

		table, err = db.postprocess(result.Table, opts)

		return err
	})
	if err != nil {
		return nil, err
	}

	return table, nil
}

// Query reads the unmixed, deduplicated and sorted files matching the filters.
// It returns a nil dataset when no file matches.
func (db *Database) Query(ctx context.Context, opts QueryOptions) (Dataset, error) {
	if db.reader == nil {
		return nil, errors.New(ErrNoReader)
	}

	table, err := db.ListFiles(ctx, opts.listOptions())
	if err != nil {
		return nil, err
	}

	if table.IsEmpty() {
		db.logger.Debugf("No %s file matches %v", db.product.Name, opts.Filters)
		return nil, nil
	}

	var ds Dataset

	err = db.telemetry(ctx).Collect(ctx, "read", map[string]any{"files": table.Len()}, func(ctx context.Context) error {
		ds, err = db.reader.Read(ctx, db.fs, table.Paths())
		return err
	})
	if err != nil {
		return nil, errors.New(err)
	}

	return ds, nil
}

// Map reads each file selected by Query separately and calls fn with the
// dataset and its record. Files are processed concurrently by the database
// workers, the first error cancels the remaining ones.
func (db *Database) Map(ctx context.Context, opts QueryOptions, fn func(ctx context.Context, ds Dataset, r record.Record) error) error {
	if db.reader == nil {
		return errors.New(ErrNoReader)
	}

	table, err := db.ListFiles(ctx, opts.listOptions())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(db.numWorkers)

	for _, r := range table.Records() {
		g.Go(func() error {
			ds, err := db.reader.Read(gctx, db.fs, []string{r.Path()})
			if err != nil {
				return errors.New(err)
			}

			return fn(gctx, ds, r)
		})
	}

	return g.Wait()
}

// TimeCoverage returns the envelope of the periods of the listed files. The
// boolean is false when no file matches.
func (db *Database) TimeCoverage(ctx context.Context, opts ListOptions) (period.Period, bool, error) {
	analyzer, ok := db.Coverage()
	if !ok {
		return period.Period{}, false, errors.New(CapabilityError{Capability: "time coverage"})
	}

	table, err := db.ListFiles(ctx, opts)
	if err != nil {
		return period.Period{}, false, err
	}

	return analyzer.Coverage(table)
}

// TimeHoles returns the gaps between the periods of the listed files.
func (db *Database) TimeHoles(ctx context.Context, opts ListOptions) ([]period.Period, error) {
	analyzer, ok := db.Coverage()
	if !ok {
		return nil, errors.New(CapabilityError{Capability: "time holes"})
	}

	table, err := db.ListFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	return analyzer.Holes(table)
}

// Download copies the listed files into dstDir, keeping their paths relative to
// the database root.
func (db *Database) Download(ctx context.Context, opts ListOptions, dstDir string) (*download.Report, error) {
	downloader, ok := db.Downloader()
	if !ok {
		return nil, errors.New(CapabilityError{Capability: "download"})
	}

	table, err := db.ListFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	var report *download.Report

	err = db.telemetry(ctx).Collect(ctx, "download", map[string]any{"files": table.Len()}, func(ctx context.Context) error {
		report, err = downloader.Fetch(ctx, table, db.root, dstDir)
		return err
	})

	return report, err
}

func (db *Database) discover(ctx context.Context, filters field.Filters, stats []string) (*discovery.Result, error) {
	if err := db.checkFilters(filters); err != nil {
		return nil, err
	}

	if err := record.ValidateStatFields(stats); err != nil {
		return nil, err
	}

	d := discovery.NewDiscovery(db.fs, db.root).
		WithConvention(db.product.Convention).
		WithFilters(filters).
		WithStatFields(stats...).
		WithNumWorkers(db.numWorkers).
		WithLogger(db.logger)

	if db.disableLayouts || len(db.layouts) == 0 {
		d = d.WithoutLayouts()
	} else {
		d = d.WithLayouts(db.layouts...)
	}

	if db.followSymlinks {
		d = d.WithFollowSymlinks()
	}

	if db.strict {
		d = d.WithStrict()
	}

	result, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}

	tlm := db.telemetry(ctx)
	tlm.Count(ctx, "discovery_listed_dirs", result.Stats.ListedDirs)
	tlm.Count(ctx, "discovery_pruned_branches", result.Stats.PrunedBranches)
	tlm.Count(ctx, "discovery_matched_files", result.Stats.MatchedFiles)

	if n := result.Warnings.Len(); n > 0 {
		db.logger.Debugf("Discovery of %s reported %d warnings", db.root, n)
	}

	return result, nil
}

func (db *Database) postprocess(table *record.Table, opts ListOptions) (*record.Table, error) {
	var err error

	if opts.Unmix && db.product.Unmixer != nil {
		if table, err = db.product.Unmixer.Resolve(table); err != nil {
			return nil, err
		}
	}

	if opts.Deduplicate && db.product.Deduplicator != nil {
		if table, err = db.product.Deduplicator.Resolve(table); err != nil {
			return nil, err
		}
	}

	if opts.Sort && len(db.product.SortKeys) > 0 {
		if table, err = table.Sort(db.product.SortKeys...); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// checkFilters rejects names absent from the product schema.
func (db *Database) checkFilters(filters field.Filters) error {
	names := db.product.Names()

	for _, name := range filters.Names() {
		if !slices.Contains(names, name) {
			return field.NewUnknownFieldError(name, names)
		}
	}

	return nil
}

func (db *Database) telemetry(ctx context.Context) *telemetry.Telemeter {
	if db.telemeter != nil {
		return db.telemeter
	}

	return telemetry.TelemeterFromContext(ctx)
}
