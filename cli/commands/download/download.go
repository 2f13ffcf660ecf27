package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/download"
	"github.com/fcollections/fcollections/internal/errors"
)

// Report is the serializable result of a download.
type Report struct {
	Copied  []string `json:"copied" yaml:"copied"`
	Skipped []string `json:"skipped" yaml:"skipped"`
}

// Run copies the selected files below the destination directory.
func Run(ctx context.Context, opts *Options) error {
	dest, err := homedir.Expand(opts.Dest)
	if err != nil {
		return errors.New(err)
	}

	if !filepath.IsAbs(dest) {
		dest = filepath.Join(opts.WorkingDir, dest)
	}

	downloaderOpts := []download.Option{
		download.WithLogger(opts.Logger),
		download.WithConcurrency(opts.Workers),
	}

	if opts.Overwrite {
		downloaderOpts = append(downloaderOpts, download.WithOverwrite())
	}

	sel, err := opts.Open(ctx, database.WithDownloader(download.New(opts.FS, opts.FS, downloaderOpts...)))
	if err != nil {
		return err
	}

	result, err := sel.DB.Download(ctx, database.ListOptions{
		Filters:     sel.Filters,
		Sort:        true,
		Deduplicate: !opts.NoDedup,
		Unmix:       true,
	}, dest)
	if result == nil {
		return err
	}

	report := Report{Copied: nonNil(result.Copied), Skipped: nonNil(result.Skipped)}

	// A partial download still reports the copied files before failing.
	var outErr error

	switch opts.Format {
	case common.FormatJSON:
		outErr = common.WriteJSON(opts.Writer, report)
	case common.FormatYAML:
		outErr = common.WriteYAML(opts.Writer, report)
	default:
		outErr = outputText(opts, report)
	}

	if err != nil {
		return err
	}

	return outErr
}

func outputText(opts *Options, report Report) error {
	c := common.NewColorizer(common.ShouldColor(opts.Options))

	var buf strings.Builder

	for _, path := range report.Copied {
		dir, base := filepath.Split(path)
		buf.WriteString(c.Path(dir, base) + "\n")
	}

	buf.WriteString(c.Heading(fmt.Sprintf("%d copied, %d skipped", len(report.Copied), len(report.Skipped))) + "\n")

	if _, err := opts.Writer.Write([]byte(buf.String())); err != nil {
		return errors.New(err)
	}

	return nil
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}

	return paths
}
