package generate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/products"
)

// UnknownLayoutError is returned for a --layout the product does not declare.
type UnknownLayoutError struct {
	Product string
	Layout  string
}

func (err UnknownLayoutError) Error() string {
	return fmt.Sprintf("product %s has no layout named %q", err.Product, err.Layout)
}

// Run writes the generated path.
func Run(_ context.Context, opts *Options) error {
	productName, root := opts.Product, opts.Root

	if opts.Database != "" {
		decl, err := opts.Config.Database(opts.Database)
		if err != nil {
			return err
		}

		if productName == "" {
			productName = decl.Product
		}

		if root == "" {
			root = decl.Path
		}
	}

	if productName == "" {
		return errors.New(common.MissingFlagError{Flag: common.ProductFlagName})
	}

	product, err := products.Lookup(productName)
	if err != nil {
		return err
	}

	values, err := parseValues(product, opts.Values)
	if err != nil {
		return err
	}

	path, err := generate(product, opts, root, values)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(opts.Writer, path); err != nil {
		return errors.New(err)
	}

	return nil
}

func generate(product *database.Product, opts *Options, root string, values convention.Values) (string, error) {
	if opts.NoLayouts || len(product.Layouts) == 0 {
		name, err := product.Convention.Generate(values)
		if err != nil {
			return "", err
		}

		if root == "" {
			return name, nil
		}

		return filepath.Join(root, name), nil
	}

	l, err := findLayout(product, opts.Layout)
	if err != nil {
		return "", err
	}

	return l.Generate(root, values)
}

func findLayout(product *database.Product, name string) (*layout.Layout, error) {
	if name == "" {
		return product.Layouts[0], nil
	}

	for _, l := range product.Layouts {
		if l.Name() == name {
			return l, nil
		}
	}

	return nil, errors.New(UnknownLayoutError{Product: product.Name, Layout: name})
}

// parseValues decodes the arguments with the product fields.
func parseValues(product *database.Product, args []string) (convention.Values, error) {
	texts, err := common.ParseFilterArgs(args)
	if err != nil {
		return nil, err
	}

	schema := product.Schema()
	values := make(convention.Values, len(texts))

	for name, text := range texts {
		f, ok := field.Find(schema, name)
		if !ok {
			return nil, field.NewUnknownFieldError(name, product.Names())
		}

		value, err := f.Decode(text)
		if err != nil {
			return nil, err
		}

		values[name] = value
	}

	return values, nil
}
