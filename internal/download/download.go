// Package download copies the files of a record table into a local directory,
// keeping their paths relative to the collection root.
package download

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/pkg/log"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 100 * time.Millisecond
)

// Downloader copies files from a source filesystem to a destination filesystem.
type Downloader struct {
	src         vfs.FS
	dst         vfs.FS
	logger      log.Logger
	concurrency int
	overwrite   bool
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithConcurrency sets the number of parallel copies.
func WithConcurrency(n int) Option {
	return func(d *Downloader) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithOverwrite replaces files already present in the destination.
func WithOverwrite() Option {
	return func(d *Downloader) {
		d.overwrite = true
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(d *Downloader) {
		d.logger = l
	}
}

// New returns a downloader. By default, it runs one copy per CPU and skips
// existing files.
func New(src, dst vfs.FS, opts ...Option) *Downloader {
	d := &Downloader{
		src:         src,
		dst:         dst,
		concurrency: runtime.NumCPU(),
		logger:      log.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Report lists the destination paths written and skipped by a Fetch.
type Report struct {
	Copied  []string
	Skipped []string
}

// Fetch copies every record of table found under root into dstDir. A failed copy
// does not stop the others, the failures are returned together.
func (d *Downloader) Fetch(ctx context.Context, table *record.Table, root, dstDir string) (*Report, error) {
	var (
		mu      sync.Mutex
		report  = &Report{}
		errs    *errors.MultiError
		g, gctx = errgroup.WithContext(ctx)
	)

	g.SetLimit(d.concurrency)

	for _, path := range table.Paths() {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, errors.Errorf("file %q is outside of %q", path, root)
		}

		target := filepath.Join(dstDir, rel)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			copied, err := d.fetch(gctx, path, target)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				errs = errs.Append(err)
			case copied:
				report.Copied = append(report.Copied, target)
			default:
				report.Skipped = append(report.Skipped, target)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(report.Copied)
	slices.Sort(report.Skipped)

	return report, errs.ErrorOrNil()
}

func (d *Downloader) fetch(ctx context.Context, src, dst string) (bool, error) {
	unlock, err := d.lock(ctx, dst)
	if err != nil {
		return false, err
	}
	defer unlock()

	if !d.overwrite {
		exists, err := vfs.FileExists(d.dst, dst)
		if err != nil {
			return false, errors.New(err)
		}

		if exists {
			d.logger.Debugf("Skipping %s, already downloaded", dst)
			return false, nil
		}
	}

	d.logger.Debugf("Copying %s to %s", src, dst)

	if err := vfs.CopyFile(d.src, src, d.dst, dst); err != nil {
		return false, err
	}

	return true, nil
}

// lock guards dst against concurrent downloads from other processes. Only the OS
// filesystem can hold file locks.
func (d *Downloader) lock(ctx context.Context, dst string) (func(), error) {
	if _, ok := d.dst.(*afero.OsFs); !ok {
		return func() {}, nil
	}

	if err := d.dst.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.New(err)
	}

	lockfile := flock.New(dst + lockSuffix)

	locked, err := lockfile.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, errors.Errorf("failed to lock %q: %w", lockfile.Path(), err)
	}

	if !locked {
		return nil, errors.Errorf("failed to lock %q", lockfile.Path())
	}

	return func() {
		if err := lockfile.Unlock(); err != nil {
			d.logger.Warnf("Failed to unlock %s: %v", lockfile.Path(), err)
		}

		_ = d.dst.Remove(lockfile.Path())
	}, nil
}
