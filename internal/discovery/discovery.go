package discovery

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/internal/worker"
	"github.com/fcollections/fcollections/pkg/log"
	"github.com/puzpuzpuz/xsync/v3"
)

// maxDiscoveryWorkers bounds the concurrency requested through WithNumWorkers.
const maxDiscoveryWorkers = 64

// Discovery is the configuration of one traversal.
type Discovery struct {
	fs             vfs.FS
	logger         log.Logger
	convention     *convention.Convention
	filters        field.Filters
	root           string
	layouts        []*layout.Layout
	statFields     []string
	numWorkers     int
	disableLayouts bool
	followSymlinks bool
	strict         bool
}

// NewDiscovery returns a sequential discovery of the tree rooted at root.
func NewDiscovery(fs vfs.FS, root string) *Discovery {
	return &Discovery{
		fs:         fs,
		root:       root,
		numWorkers: 1,
		logger:     log.Default(),
	}
}

// Result is the outcome of a discovery.
type Result struct {
	// Table holds one record per matched file, sorted by path.
	Table *record.Table
	// Warnings aggregates the non fatal diagnostics: layout mismatches, decode
	// failures and listing failures below the root. It is nil when there are none.
	Warnings *errors.MultiError
	Stats    Stats
}

// Stats counts the work done by a discovery.
type Stats struct {
	ListedDirs     int64
	PrunedBranches int64
	MatchedFiles   int64
}

// Discover runs the traversal. It fails when the root cannot be listed, when the
// filters name unknown fields, on a layout mismatch in strict mode, or when ctx is
// canceled. Every other failure only forfeits the affected branch and is reported
// in Result.Warnings.
func (d *Discovery) Discover(ctx context.Context) (*Result, error) {
	p, err := d.compile()
	if err != nil {
		return nil, err
	}

	w := &walker{
		Discovery: d,
		plan:      p,
		visited:   xsync.NewMapOf[string, struct{}](),
		listed:    xsync.NewCounter(),
		pruned:    xsync.NewCounter(),
		matched:   xsync.NewCounter(),
	}

	if d.numWorkers > 1 {
		w.pool = worker.NewWorkerPool(d.numWorkers)
	}

	if err := w.run(ctx); err != nil {
		return nil, err
	}

	table, err := record.NewTable(p.schema, d.statFields, w.records).Sort()
	if err != nil {
		return nil, err
	}

	d.logger.Debugf("Discovered %d files under %s, listed %d directories, pruned %d branches",
		table.Len(), d.root, w.listed.Value(), w.pruned.Value())

	return &Result{
		Table:    table,
		Warnings: w.warnings,
		Stats: Stats{
			ListedDirs:     w.listed.Value(),
			PrunedBranches: w.pruned.Value(),
			MatchedFiles:   w.matched.Value(),
		},
	}, nil
}

// plan is the validated form of a discovery configuration.
type plan struct {
	// filters holds one entry per layout able to satisfy the filters. A nil
	// slice means an unguided traversal.
	filters []*layout.Filters
	// unguided holds the file convention filters of an unguided traversal.
	unguided *layout.Filters
	schema   []field.Field
}

func (d *Discovery) compile() (*plan, error) {
	if d.disableLayouts || len(d.layouts) == 0 {
		file := d.convention
		if file == nil && len(d.layouts) > 0 {
			file = d.layouts[0].Terminal()
		}

		if file == nil {
			return nil, errors.New("discovery needs a layout or a file convention")
		}

		flat, err := layout.New(file)
		if err != nil {
			return nil, err
		}

		filters, err := flat.SetFilters(d.filters)
		if err != nil {
			return nil, err
		}

		return &plan{unguided: filters, schema: file.Fields()}, nil
	}

	p := &plan{}

	var firstErr error

	for i, l := range d.layouts {
		if l.Name() == "" {
			l = l.Named(fmt.Sprintf("#%d", i))
		}

		for _, f := range l.Fields() {
			if _, ok := field.Find(p.schema, f.Name()); !ok {
				p.schema = append(p.schema, f)
			}
		}

		if unknown := unknownNames(l, d.filters); len(unknown) > 0 {
			d.logger.Debugf("Layout %s ignored, it declares no field %v", l.Name(), unknown)

			if firstErr == nil {
				firstErr = field.NewUnknownFieldError(unknown[0], l.Names())
			}

			continue
		}

		filters, err := l.SetFilters(d.filters)
		if err != nil {
			return nil, err
		}

		p.filters = append(p.filters, filters)
	}

	if len(p.filters) == 0 {
		return nil, firstErr
	}

	return p, nil
}

// unknownNames returns the filtered names the layout does not declare. Such a
// layout can never satisfy the filters.
func unknownNames(l *layout.Layout, filters field.Filters) []string {
	var unknown []string

	names := l.Names()

	for _, name := range filters.Names() {
		if !slices.Contains(names, name) {
			unknown = append(unknown, name)
		}
	}

	return unknown
}

// collector gathers the records and diagnostics of concurrent branches.
type collector struct {
	warnings *errors.MultiError
	records  []record.Record
	mu       sync.Mutex
}

func (c *collector) addRecords(records []record.Record) {
	if len(records) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, records...)
}

func (c *collector) addWarning(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warnings = c.warnings.Append(err)
}
