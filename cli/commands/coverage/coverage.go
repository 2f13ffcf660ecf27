package coverage

import (
	"context"
	"strings"
	"time"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/period"
)

// Span is the serializable form of a period.
type Span struct {
	Start string `json:"start" yaml:"start"`
	Stop  string `json:"stop" yaml:"stop"`
}

// Report is the serializable coverage of a collection.
type Report struct {
	Coverage *Span `json:"coverage" yaml:"coverage"`
	Holes    []Span `json:"holes" yaml:"holes"`
	Files    int    `json:"files" yaml:"files"`
}

// Run computes the coverage of the selected files from a single listing.
func Run(ctx context.Context, opts *Options) error {
	sel, err := opts.Open(ctx)
	if err != nil {
		return err
	}

	analyzer, ok := sel.DB.Coverage()
	if !ok {
		return errors.New(database.CapabilityError{Capability: "time coverage"})
	}

	table, err := sel.DB.ListFiles(ctx, database.ListOptions{
		Filters:     sel.Filters,
		Sort:        true,
		Deduplicate: !opts.NoDedup,
		Unmix:       true,
	})
	if err != nil {
		return err
	}

	report := Report{Files: table.Len(), Holes: []Span{}}

	envelop, ok, err := analyzer.Coverage(table)
	if err != nil {
		return err
	}

	if !ok {
		opts.Logger.Warnf("No file matches the filters under %s", sel.DB.Root())
	} else {
		span := newSpan(envelop)
		report.Coverage = &span
	}

	holes, err := analyzer.Holes(table)
	if err != nil {
		return err
	}

	for _, hole := range holes {
		report.Holes = append(report.Holes, newSpan(hole))
	}

	switch opts.Format {
	case common.FormatJSON:
		return common.WriteJSON(opts.Writer, report)
	case common.FormatYAML:
		return common.WriteYAML(opts.Writer, report)
	default:
		return outputText(opts, report, envelop, holes)
	}
}

func newSpan(p period.Period) Span {
	return Span{Start: p.Start.UTC().Format(time.RFC3339), Stop: p.Stop.UTC().Format(time.RFC3339)}
}

func outputText(opts *Options, report Report, envelop period.Period, holes []period.Period) error {
	c := common.NewColorizer(common.ShouldColor(opts.Options))

	var buf strings.Builder

	buf.WriteString(c.Heading("Coverage") + "\n")

	if report.Coverage == nil {
		buf.WriteString("  none\n")
	} else {
		buf.WriteString("  " + c.Value(envelop.String()) + "\n")
	}

	buf.WriteString(c.Heading("Holes") + "\n")

	for _, hole := range holes {
		buf.WriteString("  " + c.Value(hole.String()) + "\n")
	}

	if _, err := opts.Writer.Write([]byte(buf.String())); err != nil {
		return errors.New(err)
	}

	return nil
}
