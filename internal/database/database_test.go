package database_test

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/download"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/period"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/resolve"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/pkg/log"
)

const root = "/data"

func day(d int) time.Time {
	return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
}

func newProduct() *database.Product {
	subset := field.NewEnum("subset", []string{"Basic", "Expert"})
	cycle := field.NewInteger("cycle_number").WithWidth(3)
	pass := field.NewInteger("pass_number").WithWidth(3)
	version := field.NewInteger("version")
	daily := field.NewPeriodDelta("time", "20060102", 24*time.Hour)

	file := convention.MustNew(
		`SSH_(?P<subset>[A-Za-z]+)_(?P<cycle_number>\d{3})_(?P<pass_number>\d{3})_(?P<time>\d{8})_v(?P<version>\d)\.nc`,
		[]field.Field{subset, cycle, pass, daily, version},
		"SSH_{subset}_{cycle_number}_{pass_number}_{time}_v{version}.nc",
	)

	return &database.Product{
		Name:       "ssh",
		Convention: file,
		Layouts: []*layout.Layout{layout.MustNew(
			convention.MustNew(`v(?P<version>\d)`, []field.Field{version}, "v{version}"),
			convention.MustNew(`(?P<subset>[A-Za-z]+)`, []field.Field{subset}, "{subset}"),
			file,
		)},
		Deduplicator: &resolve.Deduplicator{Unique: []string{"cycle_number", "pass_number"}, AutoPickLast: []string{"version"}},
		Unmixer:      &resolve.SubsetsUnmixer{PartitionKeys: []string{"subset"}},
		SortKeys:     []string{"cycle_number", "pass_number"},
		TimeField:    "time",
	}
}

// newTree writes versions 1 and 2 of both subsets for cycles 1 and 2, plus a
// version 1 Basic file for cycle 4.
func newTree(t *testing.T, product *database.Product) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()

	write := func(version, cycle int, subset string) {
		path, err := product.Layouts[0].Generate(root, convention.Values{
			"version":      version,
			"subset":       subset,
			"cycle_number": cycle,
			"pass_number":  1,
			"time":         period.HalfOpen(day(cycle), day(cycle+1)),
		})
		require.NoError(t, err)
		require.NoError(t, vfs.WriteFile(fs, path, []byte(path), 0o644))
	}

	for _, version := range []int{1, 2} {
		for _, subset := range []string{"Basic", "Expert"} {
			for cycle := 1; cycle <= 2; cycle++ {
				write(version, cycle, subset)
			}
		}
	}

	write(1, 4, "Basic")

	return fs
}

func newDatabase(t *testing.T, opts ...database.Option) (*database.Database, afero.Fs) {
	t.Helper()

	product := newProduct()
	fs := newTree(t, product)

	opts = append([]database.Option{database.WithLogger(log.New(log.WithOutput(io.Discard)))}, opts...)

	db, err := database.New(fs, root, product, opts...)
	require.NoError(t, err)

	return db, fs
}

func expert() field.Filters {
	return field.Filters{"subset": field.Equal{Value: "Expert"}}
}

type fakeReader struct {
	reads [][]string
	mu    sync.Mutex
}

func (r *fakeReader) Read(_ context.Context, _ vfs.FS, paths []string) (database.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads = append(r.reads, paths)

	return paths, nil
}

func (r *fakeReader) Metadata(_ context.Context, _ vfs.FS, path string) (any, error) {
	return "metadata of " + filepath.Base(path), nil
}

func TestNewNotExistingPath(t *testing.T) {
	t.Parallel()

	_, err := database.New(afero.NewMemMapFs(), "/missing", newProduct())
	require.Error(t, err)

	var pathErr database.NotExistingPathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/missing", pathErr.Path)
}

func TestNewInvalidProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		update    func(p *database.Product)
		name      string
		component string
	}{
		{
			name:      "deduplicator",
			update:    func(p *database.Product) { p.Deduplicator.Unique = []string{"orbit"} },
			component: "deduplicator",
		},
		{
			name:      "unmixer",
			update:    func(p *database.Product) { p.Unmixer.AutoPickLast = []string{"orbit"} },
			component: "unmixer",
		},
		{
			name:      "sort keys",
			update:    func(p *database.Product) { p.SortKeys = []string{"orbit"} },
			component: "sort keys",
		},
		{
			name:      "time field",
			update:    func(p *database.Product) { p.TimeField = "orbit" },
			component: "time field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			product := newProduct()
			tt.update(product)

			_, err := database.New(afero.NewMemMapFs(), "/", product)
			require.Error(t, err)

			var productErr database.InvalidProductError
			require.ErrorAs(t, err, &productErr)
			assert.Equal(t, tt.component, productErr.Component)

			var unknownErr field.UnknownFieldError
			require.ErrorAs(t, err, &unknownErr)
		})
	}
}

func TestListFilesWithoutPostprocessing(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t)

	table, err := db.ListFiles(context.Background(), database.ListOptions{StatFields: []string{record.StatSize}})
	require.NoError(t, err)
	assert.Equal(t, 9, table.Len())

	size, ok := table.Record(0).Stat(record.StatSize)
	require.True(t, ok)
	assert.Positive(t, size)
}

func TestListFilesResolves(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t, database.WithNumWorkers(4))

	table, err := db.ListFiles(context.Background(), database.ListOptions{
		Filters:     expert(),
		Sort:        true,
		Deduplicate: true,
		Unmix:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/data/v2/Expert/SSH_Expert_001_001_20230101_v2.nc",
		"/data/v2/Expert/SSH_Expert_002_001_20230102_v2.nc",
	}, table.Paths())
}

func TestListFilesSubsetMismatch(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t)

	_, err := db.ListFiles(context.Background(), database.ListOptions{Unmix: true})
	require.Error(t, err)

	var mismatch resolve.SubsetMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"subset"}, mismatch.Keys)
}

func TestListFilesUnknownFilter(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t)

	_, err := db.ListFiles(context.Background(), database.ListOptions{
		Filters: field.Filters{"orbit": field.Equal{Value: 1}},
	})
	require.Error(t, err)

	var unknownErr field.UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "orbit", unknownErr.Name)
}

func TestListFilesWithoutLayouts(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t, database.WithoutLayouts())

	table, err := db.ListFiles(context.Background(), database.ListOptions{Filters: expert()})
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("without reader", func(t *testing.T) {
		t.Parallel()

		db, _ := newDatabase(t)

		_, err := db.Query(context.Background(), database.QueryOptions{Filters: expert()})
		require.ErrorIs(t, err, database.ErrNoReader)
	})

	t.Run("reads resolved files", func(t *testing.T) {
		t.Parallel()

		reader := &fakeReader{}
		db, _ := newDatabase(t, database.WithReader(reader))

		ds, err := db.Query(context.Background(), database.QueryOptions{Filters: expert()})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"/data/v2/Expert/SSH_Expert_001_001_20230101_v2.nc",
			"/data/v2/Expert/SSH_Expert_002_001_20230102_v2.nc",
		}, ds)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		reader := &fakeReader{}
		db, _ := newDatabase(t, database.WithReader(reader))

		filters := expert()
		filters["cycle_number"] = field.Equal{Value: 9}

		ds, err := db.Query(context.Background(), database.QueryOptions{Filters: filters})
		require.NoError(t, err)
		assert.Nil(t, ds)
		assert.Empty(t, reader.reads)
	})
}

func TestMap(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t, database.WithReader(&fakeReader{}), database.WithNumWorkers(2))

	var (
		mu     sync.Mutex
		cycles []int
	)

	err := db.Map(context.Background(), database.QueryOptions{Filters: expert()}, func(_ context.Context, ds database.Dataset, r record.Record) error {
		cycle, _ := r.Value("cycle_number")

		mu.Lock()
		defer mu.Unlock()

		cycles = append(cycles, cycle.(int))

		assert.Equal(t, []string{r.Path()}, ds)

		return nil
	})
	require.NoError(t, err)

	sort.Ints(cycles)
	assert.Equal(t, []int{1, 2}, cycles)
}

func TestVariablesInfo(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t, database.WithReader(&fakeReader{}))
	ctx := context.Background()

	_, err := db.VariablesInfo(ctx, field.Filters{"version": field.Equal{Value: 1}})
	require.Error(t, err)

	var unknownErr field.UnknownFieldError
	require.ErrorAs(t, err, &unknownErr)

	_, err = db.VariablesInfo(ctx, nil)
	require.ErrorAs(t, err, &resolve.SubsetMismatchError{})

	vars, err := db.VariablesInfo(ctx, field.Filters{"subset": field.Equal{Value: "Basic"}})
	require.NoError(t, err)
	require.NotNil(t, vars)

	assert.Equal(t, map[string][]any{"subset": {"Basic"}}, vars.Subsets)
	assert.Equal(t, convention.Values{"subset": "Basic"}, vars.Selected)
	assert.Equal(t, "/data/v1/Basic/SSH_Basic_001_001_20230101_v1.nc", vars.Path)
	assert.Equal(t, "metadata of SSH_Basic_001_001_20230101_v1.nc", vars.Metadata)
}

func TestTimeCoverage(t *testing.T) {
	t.Parallel()

	db, _ := newDatabase(t)
	ctx := context.Background()
	opts := database.ListOptions{
		Filters:     field.Filters{"subset": field.Equal{Value: "Basic"}},
		Deduplicate: true,
	}

	_, ok := db.Coverage()
	require.True(t, ok)

	coverage, ok, err := db.TimeCoverage(ctx, opts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, day(1), coverage.Start)
	assert.Equal(t, day(5), coverage.Stop)

	holes, err := db.TimeHoles(ctx, opts)
	require.NoError(t, err)
	require.Len(t, holes, 1)
	assert.Equal(t, day(3), holes[0].Start)
	assert.Equal(t, day(4), holes[0].Stop)
}

func TestCapabilityNotAvailable(t *testing.T) {
	t.Parallel()

	product := newProduct()
	product.TimeField = ""

	db, err := database.New(newTree(t, product), root, product)
	require.NoError(t, err)

	ctx := context.Background()

	_, _, err = db.TimeCoverage(ctx, database.ListOptions{})
	require.ErrorIs(t, err, database.ErrCapabilityNotAvailable)

	_, err = db.TimeHoles(ctx, database.ListOptions{})
	require.ErrorIs(t, err, database.ErrCapabilityNotAvailable)

	_, err = db.Download(ctx, database.ListOptions{}, "/out")
	require.ErrorIs(t, err, database.ErrCapabilityNotAvailable)

	var capabilityErr database.CapabilityError
	require.True(t, errors.As(err, &capabilityErr))
	assert.Equal(t, "download", capabilityErr.Capability)
}

func TestDownload(t *testing.T) {
	t.Parallel()

	dst := afero.NewMemMapFs()

	product := newProduct()
	src := newTree(t, product)

	db, err := database.New(src, root, product, database.WithDownloader(download.New(src, dst)))
	require.NoError(t, err)

	report, err := db.Download(context.Background(), database.ListOptions{
		Filters:     expert(),
		Deduplicate: true,
		Unmix:       true,
	}, "/out")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/out/v2/Expert/SSH_Expert_001_001_20230101_v2.nc",
		"/out/v2/Expert/SSH_Expert_002_001_20230102_v2.nc",
	}, report.Copied)

	data, err := vfs.ReadFile(dst, report.Copied[0])
	require.NoError(t, err)
	assert.Equal(t, "/data/v2/Expert/SSH_Expert_001_001_20230101_v2.nc", string(data))
}
