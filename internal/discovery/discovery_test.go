package discovery_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/discovery"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/pkg/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/data"

var (
	version     = field.NewString("version")
	subset      = field.NewEnum("subset", []string{"Basic", "Expert"})
	cycleNumber = field.NewInteger("cycle_number").WithWidth(3)
	passNumber  = field.NewInteger("pass_number").WithWidth(3)
	temporality = field.NewEnum("temporality", []string{"REPROC", "FORWARD"}).WithCase(field.CaseLower)

	fileConvention = convention.MustNew(
		`SSH_(?P<subset>[A-Za-z]+)_(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_(?P<version>v\d)\.nc`,
		[]field.Field{subset, cycleNumber, passNumber, version},
		"SSH_{subset}_{cycle_number}_{pass_number}_{version}.nc",
	)
	versionFolder     = convention.MustNew(`(?P<version>v\d)`, []field.Field{version}, "{version}")
	subsetFolder      = convention.MustNew(`(?P<subset>[A-Za-z]+)`, []field.Field{subset}, "{subset}")
	temporalityFolder = convention.MustNew(`(?P<temporality>[a-z]+)`, []field.Field{temporality}, "{temporality}")
	cycleFolder       = convention.MustNew(`cycle_(?P<cycle_number>\d{3})`, []field.Field{cycleNumber}, "cycle_{cycle_number}")

	threeLevels = layout.MustNew(versionFolder, subsetFolder, cycleFolder, fileConvention).Named("v2")
	fourLevels  = layout.MustNew(versionFolder, subsetFolder, temporalityFolder, cycleFolder, fileConvention).Named("v3")
)

// countingFS counts the directories opened for listing and fails on demand.
type countingFS struct {
	afero.Fs
	opened  map[string]int
	failing map[string]bool
	mu      sync.Mutex
}

func newCountingFS(fs afero.Fs) *countingFS {
	return &countingFS{Fs: fs, opened: map[string]int{}, failing: map[string]bool{}}
}

func (fs *countingFS) Open(name string) (afero.File, error) {
	fs.mu.Lock()
	fs.opened[name]++
	fail := fs.failing[name]
	fs.mu.Unlock()

	if fail {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}

	return fs.Fs.Open(name)
}

func (fs *countingFS) openedPaths() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	paths := make([]string, 0, len(fs.opened))
	for path := range fs.opened {
		paths = append(paths, path)
	}

	return paths
}

func quietLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

// newTree writes two versions, two subsets, cycles 1 to 3 and passes 1 and 2 with
// the three level layout.
func newTree(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()

	for _, v := range []string{"v1", "v2"} {
		for _, s := range []string{"Basic", "Expert"} {
			for cycle := 1; cycle <= 3; cycle++ {
				for pass := 1; pass <= 2; pass++ {
					writeRecord(t, fs, threeLevels, convention.Values{
						"version": v, "subset": s, "cycle_number": cycle, "pass_number": pass,
					})
				}
			}
		}
	}

	return fs
}

func writeRecord(t *testing.T, fs afero.Fs, l *layout.Layout, values convention.Values) string {
	t.Helper()

	path, err := l.Generate(root, values)
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, vfs.WriteFile(fs, path, []byte(path), 0o644))

	return path
}

func TestDiscoverPrunesFilteredBranches(t *testing.T) {
	t.Parallel()

	fs := newCountingFS(newTree(t))

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithFilters(field.Filters{"cycle_number": field.Equal{Value: 1}}).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, result.Table.Len())
	assert.Nil(t, result.Warnings)

	for _, path := range fs.openedPaths() {
		assert.NotContains(t, path, "cycle_002")
		assert.NotContains(t, path, "cycle_003")
	}

	// root, 2 versions, 4 subsets and the 4 cycle_001 directories.
	assert.Len(t, fs.openedPaths(), 11)
	assert.Equal(t, int64(11), result.Stats.ListedDirs)
	assert.Equal(t, int64(8), result.Stats.PrunedBranches)
	assert.Equal(t, int64(8), result.Stats.MatchedFiles)

	for _, r := range result.Table.Records() {
		value, ok := r.Value("cycle_number")
		require.True(t, ok)
		assert.Equal(t, 1, value)
	}
}

func TestDiscoverRecords(t *testing.T) {
	t.Parallel()

	result, err := discovery.NewDiscovery(newTree(t), root).
		WithLayouts(threeLevels).
		WithFilters(field.Filters{
			"subset":      field.Equal{Value: "Expert"},
			"version":     field.Equal{Value: "v2"},
			"pass_number": field.Between{Start: 2},
		}).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, result.Table.Len())
	assert.Equal(t, []string{"subset", "cycle_number", "pass_number", "version", "path"}, result.Table.Columns())

	first := result.Table.Record(0)
	assert.Equal(t, filepath.Join(root, "v2", "Expert", "cycle_001", "SSH_Expert_001_002_v2.nc"), first.Path())
	assert.Equal(t, convention.Values{"version": "v2", "subset": "Expert", "cycle_number": 1, "pass_number": 2}, first.Values())
}

func TestDiscoverUnguided(t *testing.T) {
	t.Parallel()

	fs := newCountingFS(newTree(t))

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithoutLayouts().
		WithFilters(field.Filters{"cycle_number": field.Equal{Value: 1}}).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, result.Table.Len())
	// Every directory is listed: root, 2 versions, 4 subsets and 12 cycles.
	assert.Len(t, fs.openedPaths(), 19)
	assert.Equal(t, []string{"subset", "cycle_number", "pass_number", "version", "path"}, result.Table.Columns())
}

func TestDiscoverUnguidedWithConvention(t *testing.T) {
	t.Parallel()

	result, err := discovery.NewDiscovery(newTree(t), root).
		WithConvention(fileConvention).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 24, result.Table.Len())

	_, err = discovery.NewDiscovery(newTree(t), root).Discover(context.Background())
	require.Error(t, err)
}

func TestDiscoverDecodeFailureIsDiagnostic(t *testing.T) {
	t.Parallel()

	cycle := field.NewInteger("cycle_number")
	flat := layout.MustNew(convention.MustNew(`data_(?P<cycle_number>\d+)\.nc`, []field.Field{cycle}, ""))

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))
	require.NoError(t, vfs.WriteFile(fs, "/data/data_1.nc", nil, 0o644))
	require.NoError(t, vfs.WriteFile(fs, "/data/data_99999999999999999999999.nc", nil, 0o644))

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(flat).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/data_1.nc"}, result.Table.Paths())
	require.Equal(t, 1, result.Warnings.Len())

	var diagnostic discovery.DecodeDiagnostic
	require.ErrorAs(t, result.Warnings, &diagnostic)
	assert.Equal(t, "/data/data_99999999999999999999999.nc", diagnostic.Path)

	var decodeErr field.DecodeError
	require.ErrorAs(t, diagnostic, &decodeErr)
	assert.Equal(t, "cycle_number", decodeErr.Field)
}

func TestDiscoverLayoutMismatch(t *testing.T) {
	t.Parallel()

	fs := newTree(t)
	require.NoError(t, fs.MkdirAll("/data/tmp", 0o755))

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 24, result.Table.Len())
	require.Equal(t, 1, result.Warnings.Len())

	var mismatch discovery.LayoutMismatchError
	require.ErrorAs(t, result.Warnings, &mismatch)
	assert.Equal(t, "/data/tmp", mismatch.Path)
	assert.Equal(t, 0, mismatch.Depth)
	assert.Equal(t, []string{"v2"}, mismatch.Layouts)

	_, err = discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithStrict().
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.ErrorAs(t, err, &mismatch)
}

func TestDiscoverListingFailures(t *testing.T) {
	t.Parallel()

	fs := newCountingFS(newTree(t))
	fs.failing["/data/v1/Basic"] = true

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 18, result.Table.Len())

	var listingErr discovery.ListingError
	require.ErrorAs(t, result.Warnings, &listingErr)
	assert.Equal(t, "/data/v1/Basic", listingErr.Dir)

	_, err = discovery.NewDiscovery(fs, "/missing").
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.ErrorAs(t, err, &listingErr)
}

func TestDiscoverUnknownFilter(t *testing.T) {
	t.Parallel()

	_, err := discovery.NewDiscovery(newTree(t), root).
		WithLayouts(threeLevels).
		WithFilters(field.Filters{"mission": field.Equal{Value: "al"}}).
		WithLogger(quietLogger()).
		Discover(context.Background())

	var unknownErr field.UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "mission", unknownErr.Name)
}

func TestDiscoverAlternativeLayouts(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	v3 := writeRecord(t, fs, fourLevels, convention.Values{
		"version": "v3", "subset": "Expert", "temporality": "FORWARD", "cycle_number": 1, "pass_number": 1,
	})
	v2 := writeRecord(t, fs, threeLevels, convention.Values{
		"version": "v2", "subset": "Expert", "cycle_number": 1, "pass_number": 1,
	})

	result, err := discovery.NewDiscovery(fs, root).
		WithLayouts(fourLevels, threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{v2, v3}, result.Table.Paths())
	assert.Nil(t, result.Warnings)
	assert.Contains(t, result.Table.Columns(), "temporality")

	value, ok := result.Table.Record(1).Value("temporality")
	require.True(t, ok)
	assert.Equal(t, "FORWARD", value)

	// The three level layout cannot satisfy a temporality filter.
	result, err = discovery.NewDiscovery(fs, root).
		WithLayouts(fourLevels, threeLevels).
		WithFilters(field.Filters{"temporality": field.Equal{Value: "forward"}}).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{v3}, result.Table.Paths())
}

func TestDiscoverParallel(t *testing.T) {
	t.Parallel()

	fs := newTree(t)

	sequential, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)

	for _, workers := range []int{2, 8} {
		parallel, err := discovery.NewDiscovery(fs, root).
			WithLayouts(threeLevels).
			WithNumWorkers(workers).
			WithLogger(quietLogger()).
			Discover(context.Background())
		require.NoError(t, err)

		assert.Equal(t, sequential.Table.Paths(), parallel.Table.Paths())
		assert.Equal(t, sequential.Stats, parallel.Stats)
	}
}

func TestDiscoverStrictParallel(t *testing.T) {
	t.Parallel()

	fs := newTree(t)
	require.NoError(t, fs.MkdirAll("/data/v1/Basic/tmp", 0o755))

	_, err := discovery.NewDiscovery(fs, root).
		WithLayouts(threeLevels).
		WithNumWorkers(4).
		WithStrict().
		WithLogger(quietLogger()).
		Discover(context.Background())

	var mismatch discovery.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "/data/v1/Basic/tmp", mismatch.Path)
}

func TestDiscoverCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := discovery.NewDiscovery(newTree(t), root).
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverStatFields(t *testing.T) {
	t.Parallel()

	result, err := discovery.NewDiscovery(newTree(t), root).
		WithLayouts(threeLevels).
		WithFilters(field.Filters{"cycle_number": field.Equal{Value: 1}, "pass_number": field.Equal{Value: 1}}).
		WithStatFields(record.StatSize).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, result.Table.Len())

	r := result.Table.Record(0)
	size, ok := r.Stat(record.StatSize)
	require.True(t, ok)
	assert.Equal(t, int64(len(r.Path())), size)
	assert.Equal(t, "size", result.Table.Columns()[5])
}

func TestDiscoverSymlinks(t *testing.T) {
	t.Parallel()

	fs := vfs.NewOSFS()
	tempDir := t.TempDir()
	dataRoot := filepath.Join(tempDir, "root")
	target := filepath.Join(tempDir, "real")

	path, err := threeLevels.Generate(target, convention.Values{
		"version": "v1", "subset": "Basic", "cycle_number": 1, "pass_number": 1,
	})
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, vfs.WriteFile(fs, path, nil, 0o644))
	require.NoError(t, fs.MkdirAll(dataRoot, 0o755))
	require.NoError(t, vfs.Symlink(fs, filepath.Join(target, "v1"), filepath.Join(dataRoot, "v1")))

	result, err := discovery.NewDiscovery(fs, dataRoot).
		WithLayouts(threeLevels).
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Table.IsEmpty())
	assert.Nil(t, result.Warnings)

	result, err = discovery.NewDiscovery(fs, dataRoot).
		WithLayouts(threeLevels).
		WithFollowSymlinks().
		WithLogger(quietLogger()).
		Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Table.Len())
	assert.True(t, strings.HasPrefix(result.Table.Record(0).Path(), filepath.Join(dataRoot, "v1")))
}

func TestDiscoverSymlinkCycle(t *testing.T) {
	t.Parallel()

	fs := vfs.NewOSFS()
	dataRoot := t.TempDir()

	path, err := threeLevels.Generate(dataRoot, convention.Values{
		"version": "v1", "subset": "Basic", "cycle_number": 1, "pass_number": 1,
	})
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, vfs.WriteFile(fs, path, nil, 0o644))

	// cycle_001/loop points back to the root.
	require.NoError(t, vfs.Symlink(fs, dataRoot, filepath.Join(filepath.Dir(path), "loop")))

	for _, workers := range []int{1, 4} {
		result, err := discovery.NewDiscovery(fs, dataRoot).
			WithLayouts(threeLevels).
			WithoutLayouts().
			WithFollowSymlinks().
			WithNumWorkers(workers).
			WithLogger(quietLogger()).
			Discover(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{path}, result.Table.Paths())
	}
}
