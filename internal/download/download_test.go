package download_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fcollections/fcollections/internal/download"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(paths ...string) *record.Table {
	records := make([]record.Record, 0, len(paths))
	for _, path := range paths {
		records = append(records, record.New(path, nil, nil))
	}

	return record.NewTable(nil, nil, records)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	src := vfs.NewMemMapFS()
	dst := vfs.NewMemMapFS()

	require.NoError(t, vfs.WriteFile(src, "/remote/cycle_001/a.nc", []byte("a"), 0o644))
	require.NoError(t, vfs.WriteFile(src, "/remote/cycle_002/b.nc", []byte("b"), 0o644))
	require.NoError(t, vfs.WriteFile(dst, "/local/cycle_002/b.nc", []byte("old"), 0o644))

	files := table("/remote/cycle_001/a.nc", "/remote/cycle_002/b.nc")

	report, err := download.New(src, dst, download.WithConcurrency(2)).
		Fetch(context.Background(), files, "/remote", "/local")
	require.NoError(t, err)
	assert.Equal(t, []string{"/local/cycle_001/a.nc"}, report.Copied)
	assert.Equal(t, []string{"/local/cycle_002/b.nc"}, report.Skipped)

	data, err := vfs.ReadFile(dst, "/local/cycle_002/b.nc")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)

	report, err = download.New(src, dst, download.WithOverwrite()).
		Fetch(context.Background(), files, "/remote", "/local")
	require.NoError(t, err)
	assert.Len(t, report.Copied, 2)

	data, err = vfs.ReadFile(dst, "/local/cycle_002/b.nc")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}

func TestFetchAggregatesFailures(t *testing.T) {
	t.Parallel()

	src := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(src, "/remote/a.nc", []byte("a"), 0o644))

	report, err := download.New(src, vfs.NewMemMapFS()).
		Fetch(context.Background(), table("/remote/a.nc", "/remote/missing_1.nc", "/remote/missing_2.nc"), "/remote", "/local")
	require.Error(t, err)

	var multiErr *errors.MultiError
	require.ErrorAs(t, err, &multiErr)
	assert.Equal(t, 2, multiErr.Len())
	assert.Equal(t, []string{"/local/a.nc"}, report.Copied)
}

func TestFetchOutsideRoot(t *testing.T) {
	t.Parallel()

	_, err := download.New(vfs.NewMemMapFS(), vfs.NewMemMapFS()).
		Fetch(context.Background(), table("/elsewhere/a.nc"), "/remote", "/local")
	require.Error(t, err)
}

func TestFetchLocksOSFiles(t *testing.T) {
	t.Parallel()

	fs := vfs.NewOSFS()
	root := t.TempDir()
	remote := filepath.Join(root, "remote")
	local := filepath.Join(root, "local")

	require.NoError(t, vfs.WriteFile(fs, filepath.Join(remote, "cycle_001", "a.nc"), []byte("a"), 0o644))

	report, err := download.New(fs, fs).
		Fetch(context.Background(), table(filepath.Join(remote, "cycle_001", "a.nc")), remote, local)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(local, "cycle_001", "a.nc")}, report.Copied)

	exists, err := vfs.FileExists(fs, filepath.Join(local, "cycle_001", "a.nc.lock"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchCanceled(t *testing.T) {
	t.Parallel()

	src := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(src, "/remote/a.nc", []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := download.New(src, vfs.NewMemMapFS()).Fetch(ctx, table("/remote/a.nc"), "/remote", "/local")
	require.ErrorIs(t, err, context.Canceled)
}
