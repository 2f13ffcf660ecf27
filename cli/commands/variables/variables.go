package variables

import (
	"context"
	"strings"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
)

// Report is the serializable description of the subsets.
type Report struct {
	Subsets  map[string][]string `json:"subsets" yaml:"subsets"`
	Selected map[string]string   `json:"selected" yaml:"selected"`
	Metadata any                 `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Path     string              `json:"path" yaml:"path"`
}

func Run(ctx context.Context, opts *Options) error {
	sel, err := opts.Open(ctx)
	if err != nil {
		return err
	}

	product := sel.DB.Product()

	keys := product.PartitionKeys()
	if len(keys) == 0 {
		return errors.New(database.CapabilityError{Capability: "subsets"})
	}

	vars, err := sel.DB.VariablesInfo(ctx, sel.Filters)
	if err != nil {
		return err
	}

	if vars == nil {
		opts.Logger.Warnf("No file matches the filters under %s", sel.DB.Root())
		return nil
	}

	report, err := newReport(product.Schema(), vars)
	if err != nil {
		return err
	}

	switch opts.Format {
	case common.FormatJSON:
		return common.WriteJSON(opts.Writer, report)
	case common.FormatYAML:
		return common.WriteYAML(opts.Writer, report)
	default:
		return outputText(opts, keys, report)
	}
}

func newReport(schema []field.Field, vars *database.Variables) (*Report, error) {
	report := &Report{
		Subsets:  make(map[string][]string, len(vars.Subsets)),
		Selected: make(map[string]string, len(vars.Selected)),
		Metadata: vars.Metadata,
		Path:     vars.Path,
	}

	for key, values := range vars.Subsets {
		f, ok := field.Find(schema, key)
		if !ok {
			continue
		}

		texts := make([]string, 0, len(values))

		for _, value := range values {
			text, err := f.Encode(value)
			if err != nil {
				return nil, err
			}

			texts = append(texts, text)
		}

		report.Subsets[key] = texts
	}

	for key, value := range vars.Selected {
		f, ok := field.Find(schema, key)
		if !ok {
			continue
		}

		text, err := f.Encode(value)
		if err != nil {
			return nil, err
		}

		report.Selected[key] = text
	}

	return report, nil
}

func outputText(opts *Options, keys []string, report *Report) error {
	c := common.NewColorizer(common.ShouldColor(opts.Options))

	var buf strings.Builder

	buf.WriteString(c.Heading("Subsets") + "\n")

	for _, key := range keys {
		buf.WriteString("  " + key + ": " + c.Value(strings.Join(report.Subsets[key], ", ")) + "\n")
	}

	buf.WriteString(c.Heading("Selected") + "\n")

	for _, key := range keys {
		if value, ok := report.Selected[key]; ok {
			buf.WriteString("  " + key + ": " + c.Value(value) + "\n")
		}
	}

	buf.WriteString(c.Heading("Path") + "\n  " + report.Path + "\n")

	if _, err := opts.Writer.Write([]byte(buf.String())); err != nil {
		return errors.New(err)
	}

	return nil
}
