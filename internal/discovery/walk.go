package discovery

import (
	"context"
	"os"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/internal/worker"
	"github.com/puzpuzpuz/xsync/v3"
)

// walker holds the state of one traversal. Nothing is shared between calls.
type walker struct {
	*Discovery
	plan    *plan
	pool    *worker.Pool
	visited *xsync.MapOf[string, struct{}]
	listed  *xsync.Counter
	pruned  *xsync.Counter
	matched *xsync.Counter
	collector
}

// branch is a directory to list, with the layouts still accepting its path and
// the values they decoded so far.
type branch struct {
	dir        string
	candidates []candidate
	depth      int
}

type candidate struct {
	filters *layout.Filters
	values  convention.Values
}

func (w *walker) run(ctx context.Context) error {
	root := branch{dir: w.root}

	for _, filters := range w.plan.filters {
		root.candidates = append(root.candidates, candidate{filters: filters, values: convention.Values{}})
	}

	// The root is listed before any worker starts: failing to list it is fatal.
	children, err := w.visit(ctx, root, true)
	if err != nil {
		return err
	}

	if w.pool == nil {
		for _, child := range children {
			if err := w.walk(ctx, child); err != nil {
				return err
			}
		}

		return nil
	}

	for _, child := range children {
		w.submit(ctx, child)
	}

	if err := w.pool.Wait(); err != nil {
		return errors.UnwrapMultiErrors(err)[0]
	}

	return nil
}

func (w *walker) submit(ctx context.Context, b branch) {
	w.pool.Submit(func() error {
		return w.walk(ctx, b)
	})
}

func (w *walker) walk(ctx context.Context, b branch) error {
	children, err := w.visit(ctx, b, false)
	if err != nil {
		if w.pool != nil {
			w.pool.Stop()
		}

		return err
	}

	for _, child := range children {
		if w.pool != nil {
			w.submit(ctx, child)
			continue
		}

		if err := w.walk(ctx, child); err != nil {
			return err
		}
	}

	return nil
}

// visit lists one directory, emits the records of its matching entries and
// returns the subdirectories to descend into.
func (w *walker) visit(ctx context.Context, b branch, isRoot bool) ([]branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.New(err)
	}

	if w.followSymlinks {
		canonical, err := vfs.Canonical(w.fs, b.dir)
		if err != nil {
			return nil, w.listingFailed(b.dir, err, isRoot)
		}

		if _, loaded := w.visited.LoadOrStore(canonical, struct{}{}); loaded {
			w.logger.Debugf("Skipping %s, %s is already listed", b.dir, canonical)
			return nil, nil
		}
	}

	entries, err := vfs.ReadDir(w.fs, b.dir)
	if err != nil {
		return nil, w.listingFailed(b.dir, err, isRoot)
	}

	w.listed.Inc()

	var (
		children []branch
		records  []record.Record
	)

	for _, entry := range entries {
		path := vfs.Join(b.dir, entry.Name)

		info, ok := w.resolve(path, entry)
		if !ok {
			continue
		}

		var (
			child *branch
			rec   *record.Record
		)

		if w.plan.unguided != nil {
			child, rec = w.matchUnguided(path, entry.Name, info)
		} else if child, rec, err = w.matchGuided(b, path, entry.Name, info); err != nil {
			return nil, err
		}

		if child != nil {
			children = append(children, *child)
		}

		if rec != nil {
			records = append(records, *rec)
		}
	}

	w.addRecords(records)

	return children, nil
}

// resolve returns the info describing what an entry points to. Symbolic links
// are skipped unless they are followed.
func (w *walker) resolve(path string, entry vfs.Entry) (os.FileInfo, bool) {
	if !entry.IsSymlink() {
		return entry.Info, true
	}

	if !w.followSymlinks {
		w.logger.Debugf("Skipping symbolic link %s", path)
		return nil, false
	}

	info, err := w.fs.Stat(path)
	if err != nil {
		w.warn(errors.Errorf("failed to resolve symbolic link %s: %w", path, err))
		return nil, false
	}

	return info, true
}

func (w *walker) matchUnguided(path, name string, info os.FileInfo) (*branch, *record.Record) {
	if info.IsDir() {
		return &branch{dir: path}, nil
	}

	values, err := w.plan.unguided.Layout().Parse(0, name)
	if err != nil {
		w.warn(DecodeDiagnostic{Path: path, Err: err})
		return nil, nil
	}

	if values == nil {
		w.logger.Tracef("%s does not match the file convention", path)
		return nil, nil
	}

	if !w.plan.unguided.Test(0, values) {
		w.pruned.Inc()
		return nil, nil
	}

	return nil, w.newRecord(path, values, info)
}

// matchGuided tests an entry against the convention of the current depth of
// every layout accepting the branch.
func (w *walker) matchGuided(b branch, path, name string, info os.FileInfo) (*branch, *record.Record, error) {
	var (
		survivors []candidate
		terminal  *candidate
		decodeErr error
		matched   bool
		layouts   []string
	)

	for _, c := range b.candidates {
		l := c.filters.Layout()
		layouts = append(layouts, l.Name())

		isTerminal := b.depth == l.Depth()-1
		if !isTerminal && !info.IsDir() {
			continue
		}

		values, err := l.Parse(b.depth, name)
		if err != nil {
			decodeErr = err
			continue
		}

		if values == nil {
			continue
		}

		matched = true

		if !c.filters.Test(b.depth, values) {
			continue
		}

		next := candidate{filters: c.filters, values: c.values.Merge(values)}

		if isTerminal {
			if terminal == nil {
				terminal = &next
			}

			continue
		}

		survivors = append(survivors, next)
	}

	switch {
	case !matched && decodeErr != nil:
		w.warn(DecodeDiagnostic{Path: path, Err: decodeErr})
		return nil, nil, nil
	case !matched:
		err := NewLayoutMismatchError(path, b.depth, layouts)
		if w.strict {
			return nil, nil, err
		}

		w.warn(err)

		return nil, nil, nil
	case terminal == nil && len(survivors) == 0:
		w.logger.Tracef("Pruned %s", path)
		w.pruned.Inc()

		return nil, nil, nil
	}

	var (
		child *branch
		rec   *record.Record
	)

	if terminal != nil {
		rec = w.newRecord(path, terminal.values, info)
	}

	if len(survivors) > 0 {
		child = &branch{dir: path, depth: b.depth + 1, candidates: survivors}
	}

	return child, rec, nil
}

func (w *walker) newRecord(path string, values convention.Values, info os.FileInfo) *record.Record {
	w.matched.Inc()

	rec := record.New(path, values, record.StatValues(info, w.statFields))

	return &rec
}

func (w *walker) listingFailed(dir string, err error, isRoot bool) error {
	listingErr := NewListingError(dir, err)
	if isRoot {
		return listingErr
	}

	w.warn(listingErr)

	return nil
}

func (w *walker) warn(err error) {
	w.logger.Warnf("%v", err)
	w.addWarning(err)
}
