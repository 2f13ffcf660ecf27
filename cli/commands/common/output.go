package common

import (
	"encoding/json"
	"io"
	"os"
	"slices"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/options"
)

const (
	// FormatText outputs human readable lines.
	FormatText = "text"

	// FormatJSON outputs a JSON document.
	FormatJSON = "json"

	// FormatYAML outputs a YAML document.
	FormatYAML = "yaml"

	// FormatTree outputs the matched paths as a tree.
	FormatTree = "tree"
)

// ValidateFormat rejects a format that is not one of supported.
func ValidateFormat(format string, supported ...string) error {
	if slices.Contains(supported, format) {
		return nil
	}

	return errors.New(InvalidFormatError{Format: format, Supported: supported})
}

// ShouldColor reports whether the results are written to a terminal.
func ShouldColor(opts *options.Options) bool {
	if opts.NoColor {
		return false
	}

	file, ok := opts.Writer.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Colorizer colors the parts of the text output.
type Colorizer struct {
	headingColorizer func(string) string
	pathColorizer    func(string) string
	fileColorizer    func(string) string
	valueColorizer   func(string) string
}

// NewColorizer returns a colorizer, a no-op one when shouldColor is false.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		noop := func(s string) string { return s }

		return &Colorizer{
			headingColorizer: noop,
			pathColorizer:    noop,
			fileColorizer:    noop,
			valueColorizer:   noop,
		}
	}

	return &Colorizer{
		headingColorizer: ansi.ColorFunc("yellow+bh"),
		pathColorizer:    ansi.ColorFunc("white+d"),
		fileColorizer:    ansi.ColorFunc("blue+bh"),
		valueColorizer:   ansi.ColorFunc("green"),
	}
}

func (c *Colorizer) Heading(s string) string {
	return c.headingColorizer(s)
}

// Path dims the directory of path and highlights its base name.
func (c *Colorizer) Path(dir, base string) string {
	if dir == "" {
		return c.fileColorizer(base)
	}

	return c.pathColorizer(dir) + c.fileColorizer(base)
}

func (c *Colorizer) Value(s string) string {
	return c.valueColorizer(s)
}

// Row is the serializable form of a record: the canonical text of each decoded
// value, the path and the stat attributes.
type Row map[string]any

// Rows encodes the records of table.
func Rows(table *record.Table) ([]Row, error) {
	rows := make([]Row, 0, table.Len())

	for _, r := range table.Records() {
		row, err := EncodeRecord(table, r)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// EncodeRecord encodes one record of table.
func EncodeRecord(table *record.Table, r record.Record) (Row, error) {
	row := Row{record.PathColumn: r.Path()}

	for _, f := range table.Schema() {
		value, ok := r.Value(f.Name())
		if !ok {
			continue
		}

		text, err := f.Encode(value)
		if err != nil {
			return nil, err
		}

		row[f.Name()] = text
	}

	for _, name := range table.StatColumns() {
		value, ok := r.Stat(name)
		if !ok {
			continue
		}

		row[name] = StatText(value)
	}

	return row, nil
}

// StatText renders a stat attribute for the outputs.
func StatText(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case os.FileMode:
		return v.String()
	default:
		return v
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return errors.New(err)
	}

	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd

	if err := encoder.Encode(v); err != nil {
		return errors.New(err)
	}

	return errors.WithStackTrace(encoder.Close())
}
