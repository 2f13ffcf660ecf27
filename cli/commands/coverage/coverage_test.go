package coverage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/cli/commands/coverage"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/products"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

var files = []string{
	"PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_011_20230709T142801_20230709T151908_PIB0_01.nc",
	"PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_018_20230709T202541_20230709T211246_PIB0_01.nc",
}

func newOptions(t *testing.T, format string, filters ...string) (*coverage.Options, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, vfs.WriteFile(fs, vfs.Join("/swot", file), nil, 0o644))
	}

	var out bytes.Buffer

	opts := coverage.NewOptions(&options.Options{
		Writer:     &out,
		ErrWriter:  io.Discard,
		Logger:     log.New(log.WithOutput(io.Discard)),
		FS:         fs,
		Config:     catalogconfig.Default(),
		WorkingDir: "/",
		Workers:    1,
	})
	opts.Product = products.SwotL2LRSSH
	opts.Root = "/swot"
	opts.Format = format
	opts.FilterArgs = *cli.NewStringSlice(filters...)

	return opts, &out
}

func TestCoverageJSON(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatJSON)
	require.NoError(t, opts.Validate())
	require.NoError(t, coverage.Run(context.Background(), opts))

	var report coverage.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, 2, report.Files)
	require.NotNil(t, report.Coverage)
	assert.Equal(t, coverage.Span{Start: "2023-07-09T14:28:01Z", Stop: "2023-07-09T21:12:46Z"}, *report.Coverage)
	assert.Equal(t, []coverage.Span{{Start: "2023-07-09T15:19:08Z", Stop: "2023-07-09T20:25:41Z"}}, report.Holes)
}

func TestCoverageText(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatText, "pass_number=11")
	require.NoError(t, coverage.Run(context.Background(), opts))

	assert.Equal(t, "Coverage\n  [2023-07-09T14:28:01Z, 2023-07-09T15:19:08Z]\nHoles\n", out.String())
}

func TestCoverageEmpty(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatYAML, "cycle_number=1")
	require.NoError(t, coverage.Run(context.Background(), opts))

	assert.Contains(t, out.String(), "coverage: null")
	assert.Contains(t, out.String(), "files: 0")
}

func TestCoverageInvalidFormat(t *testing.T) {
	t.Parallel()

	opts, _ := newOptions(t, common.FormatTree)
	require.ErrorAs(t, opts.Validate(), &common.InvalidFormatError{})
}
