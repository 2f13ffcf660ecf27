package variables_test

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
	"github.com/fcollections/fcollections/cli/commands/variables"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/products"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

var files = []string{
	"PIB0/Basic/cycle_546/SWOT_L2_LR_SSH_Basic_546_011_20230608T191826_20230608T200933_PIB0_01.nc",
	"PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_011_20230709T142801_20230709T151908_PIB0_01.nc",
}

func newOptions(t *testing.T, format string, filters ...string) (*variables.Options, *bytes.Buffer) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, vfs.WriteFile(fs, vfs.Join("/swot", file), []byte("data"), 0o644))
	}

	var out bytes.Buffer

	opts := variables.NewOptions(&options.Options{
		Writer:     &out,
		ErrWriter:  io.Discard,
		Logger:     log.New(log.WithOutput(io.Discard)),
		FS:         fs,
		Config:     catalogconfig.Default(),
		WorkingDir: "/",
		Workers:    2,
	})
	opts.Product = products.SwotL2LRSSH
	opts.Root = "/swot"
	opts.Format = format
	opts.FilterArgs = *cli.NewStringSlice(filters...)

	return opts, &out
}

func TestVariablesJSON(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatJSON, "subset=Expert")
	require.NoError(t, opts.Validate())
	require.NoError(t, variables.Run(context.Background(), opts))

	var report variables.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, map[string][]string{"level": {"L2"}, "subset": {"Expert"}}, report.Subsets)
	assert.Equal(t, map[string]string{"level": "L2", "subset": "Expert"}, report.Selected)
	assert.Equal(t, "/swot/"+files[1], report.Path)
}

func TestVariablesText(t *testing.T) {
	t.Parallel()

	opts, out := newOptions(t, common.FormatText, "subset=Basic")
	require.NoError(t, variables.Run(context.Background(), opts))

	assert.Equal(t, "Subsets\n  level: L2\n  subset: Basic\nSelected\n  level: L2\n  subset: Basic\nPath\n  /swot/"+files[0]+"\n", out.String())
}

func TestVariablesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filters []string
	}{
		{name: "mixed subsets"},
		{name: "not a partition key", filters: []string{"cycle_number=577"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, out := newOptions(t, common.FormatText, tt.filters...)
			require.Error(t, variables.Run(context.Background(), opts))
			assert.Empty(t, out.String())
		})
	}

	opts, _ := newOptions(t, common.FormatText, "cycle_number=577")
	require.ErrorAs(t, variables.Run(context.Background(), opts), &field.UnknownFieldError{})
}
