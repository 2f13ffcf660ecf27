package list_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/commands/list"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/filter"
	"github.com/fcollections/fcollections/internal/products"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

var files = []string{
	"PIA2/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_018_20230709T202541_20230709T211246_PIA2_02.nc",
	"PIB0/Basic/cycle_546/SWOT_L2_LR_SSH_Basic_546_011_20230608T191826_20230608T200933_PIB0_01.nc",
	"PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_011_20230709T142801_20230709T151908_PIB0_01.nc",
	"PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_018_20230709T202541_20230709T211246_PIB0_01.nc",
}

func newOptions(t *testing.T, format string, filters ...string) (*list.Options, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, vfs.WriteFile(fs, vfs.Join("/swot", file), []byte("data"), 0o644))
	}

	var out bytes.Buffer

	globalOpts := &options.Options{
		Writer:     &out,
		ErrWriter:  io.Discard,
		Logger:     log.New(log.WithOutput(io.Discard)),
		FS:         fs,
		Config:     catalogconfig.Default(),
		WorkingDir: "/",
		Workers:    2,
	}

	opts := list.NewOptions(globalOpts)
	opts.Product = products.SwotL2LRSSH
	opts.Root = "/swot"
	opts.Format = format
	opts.FilterArgs = *cli.NewStringSlice(filters...)

	return opts, &out
}

func TestListText(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatText, "cycle_number=577")
	require.NoError(t, opts.Validate())
	require.NoError(t, list.Run(context.Background(), opts))

	assert.Equal(t, []string{
		"/swot/PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_011_20230709T142801_20230709T151908_PIB0_01.nc",
		"/swot/PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_018_20230709T202541_20230709T211246_PIB0_01.nc",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}

func TestListFilterQuery(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatText, "cycle_number=577 | !pass_number=11")
	require.NoError(t, list.Run(context.Background(), opts))

	assert.Equal(t,
		"/swot/PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_018_20230709T202541_20230709T211246_PIB0_01.nc\n",
		out.String())
}

func TestListNoDedup(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatText, "cycle_number=577", "pass_number=18")
	opts.NoDedup = true
	require.NoError(t, list.Run(context.Background(), opts))

	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 2)
}

func TestListJSON(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatJSON, "subset=Basic")
	opts.Stats = *cli.NewStringSlice("size")
	require.NoError(t, opts.Validate())
	require.NoError(t, list.Run(context.Background(), opts))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)

	assert.Equal(t, "546", rows[0]["cycle_number"])
	assert.Equal(t, "011", rows[0]["pass_number"])
	assert.Equal(t, "PIB0_01", rows[0]["version"])
	assert.Equal(t, "Basic", rows[0]["subset"])
	assert.Equal(t, "20230608T191826_20230608T200933", rows[0]["time"])
	assert.InDelta(t, 4, rows[0]["size"], 0)
}

func TestListYAML(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatYAML, "subset=Basic")
	require.NoError(t, list.Run(context.Background(), opts))

	assert.Contains(t, out.String(), "version: PIB0_01")
	assert.Contains(t, out.String(), "path: /swot/PIB0/Basic/cycle_546/")
}

func TestListTree(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatTree, "subset=Basic")
	require.NoError(t, list.Run(context.Background(), opts))

	for _, segment := range []string{"/swot", "PIB0", "Basic", "cycle_546", "SWOT_L2_LR_SSH_Basic_546_011_20230608T191826_20230608T200933_PIB0_01.nc"} {
		assert.Contains(t, out.String(), segment)
	}
}

func TestListErrors(t *testing.T) {
	t.Parallel()

	opts, _ := newOptions(t, "csv")
	require.ErrorAs(t, opts.Validate(), &common.InvalidFormatError{})

	opts, _ = newOptions(t, common.FormatText)
	opts.Stats = *cli.NewStringSlice("owner")
	require.Error(t, opts.Validate())

	opts, _ = newOptions(t, common.FormatText)
	require.Error(t, list.Run(context.Background(), opts), "subsets are mixed")

	opts, _ = newOptions(t, common.FormatText)
	opts.Product = ""
	require.ErrorAs(t, list.Run(context.Background(), opts), &common.MissingFlagError{})

	opts, _ = newOptions(t, common.FormatText, "cycle")
	require.ErrorAs(t, list.Run(context.Background(), opts), &filter.ParseError{})
}
