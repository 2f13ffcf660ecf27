package download_test

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
	"github.com/fcollections/fcollections/cli/commands/download"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/products"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

const (
	basic  = "PIB0/Basic/cycle_546/SWOT_L2_LR_SSH_Basic_546_011_20230608T191826_20230608T200933_PIB0_01.nc"
	expert = "PIB0/Expert/cycle_577/SWOT_L2_LR_SSH_Expert_577_011_20230709T142801_20230709T151908_PIB0_01.nc"
)

func newOptions(t *testing.T, fs afero.Fs, format string) (*download.Options, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	opts := download.NewOptions(&options.Options{
		Writer:     &out,
		ErrWriter:  io.Discard,
		Logger:     log.New(log.WithOutput(io.Discard)),
		FS:         fs,
		Config:     catalogconfig.Default(),
		WorkingDir: "/work",
		Workers:    2,
	})
	opts.Product = products.SwotL2LRSSH
	opts.Root = "/swot"
	opts.Dest = "out"
	opts.Format = format
	opts.FilterArgs = *cli.NewStringSlice("subset=Expert")

	return opts, &out
}

func TestDownload(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	for _, file := range []string{basic, expert} {
		require.NoError(t, vfs.WriteFile(fs, vfs.Join("/swot", file), []byte(file), 0o644))
	}

	opts, out := newOptions(t, fs, common.FormatJSON)
	require.NoError(t, opts.Validate())
	require.NoError(t, download.Run(context.Background(), opts))

	var report download.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, download.Report{Copied: []string{"/work/out/" + expert}, Skipped: []string{}}, report)

	data, err := vfs.ReadFile(fs, "/work/out/"+expert)
	require.NoError(t, err)
	assert.Equal(t, expert, string(data))

	exists, err := vfs.FileExists(fs, "/work/out/"+basic)
	require.NoError(t, err)
	assert.False(t, exists)

	opts, out = newOptions(t, fs, common.FormatText)
	require.NoError(t, download.Run(context.Background(), opts))
	assert.Equal(t, "0 copied, 1 skipped\n", out.String())
}

func TestDownloadValidate(t *testing.T) {
	t.Parallel()

	opts, _ := newOptions(t, afero.NewMemMapFs(), common.FormatTree)
	opts.Dest = ""

	err := opts.Validate()
	require.ErrorAs(t, err, &common.MissingFlagError{})
	require.ErrorAs(t, err, &common.InvalidFormatError{})
}
