package products

import (
	"context"
	"strings"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/products"
)

// Description is the serializable description of a product.
type Description struct {
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Convention    string   `json:"convention" yaml:"convention"`
	Fields        []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Layouts       []string `json:"layouts,omitempty" yaml:"layouts,omitempty"`
	PartitionKeys []string `json:"partition_keys,omitempty" yaml:"partition_keys,omitempty"`
}

type Field struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Run writes the product summaries, with their fields when names are given.
func Run(_ context.Context, opts *Options) error {
	names := opts.Names
	detailed := len(names) > 0

	if !detailed {
		names = products.Names()
	}

	descriptions := make([]Description, 0, len(names))

	for _, name := range names {
		product, err := products.Lookup(name)
		if err != nil {
			return err
		}

		descriptions = append(descriptions, describe(product, detailed))
	}

	switch opts.Format {
	case common.FormatJSON:
		return common.WriteJSON(opts.Writer, descriptions)
	case common.FormatYAML:
		return common.WriteYAML(opts.Writer, descriptions)
	default:
		return outputText(opts, descriptions)
	}
}

func describe(product *database.Product, detailed bool) Description {
	desc := Description{
		Name:        product.Name,
		Description: product.Description,
		Convention:  product.Convention.Template(),
	}

	if !detailed {
		return desc
	}

	for _, f := range product.Schema() {
		desc.Fields = append(desc.Fields, Field{Name: f.Name(), Description: describeField(f)})
	}

	for _, l := range product.Layouts {
		desc.Layouts = append(desc.Layouts, l.Name())
	}

	desc.PartitionKeys = product.PartitionKeys()

	return desc
}

func describeField(f field.Field) string {
	return strings.Join(strings.Fields(f.Description()), " ")
}

func outputText(opts *Options, descriptions []Description) error {
	c := common.NewColorizer(common.ShouldColor(opts.Options))

	var buf strings.Builder

	for _, desc := range descriptions {
		buf.WriteString(c.Heading(desc.Name) + "  " + desc.Description + "\n")
		buf.WriteString("  " + c.Value(desc.Convention) + "\n")

		for _, f := range desc.Fields {
			buf.WriteString("  " + c.Value(f.Name) + ": " + f.Description + "\n")
		}

		if len(desc.Layouts) > 0 {
			buf.WriteString("  layouts: " + strings.Join(desc.Layouts, ", ") + "\n")
		}

		if len(desc.PartitionKeys) > 0 {
			buf.WriteString("  partition keys: " + strings.Join(desc.PartitionKeys, ", ") + "\n")
		}
	}

	if _, err := opts.Writer.Write([]byte(buf.String())); err != nil {
		return errors.New(err)
	}

	return nil
}
