// Package common holds the flags and helpers shared by the commands working on
// a database.
package common

import (
	"context"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/flags"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/filter"
	"github.com/fcollections/fcollections/internal/products"
	"github.com/fcollections/fcollections/options"
)

const (
	RootFlagName           = "root"
	ProductFlagName        = "product"
	DatabaseFlagName       = "database"
	FilterFlagName         = "filter"
	NoLayoutsFlagName      = "no-layouts"
	FollowSymlinksFlagName = "follow-symlinks"
	StrictFlagName         = "strict"

	filterSeparator = "="
)

// DatabaseOptions select the collection a command works on.
type DatabaseOptions struct {
	*options.Options

	// Root is the directory holding the collection.
	Root string
	// Product is the name of a registered product.
	Product string
	// Database is the label of a database block of the config file.
	Database string

	// FilterArgs are the --filter values, `<field>=<reference>`.
	FilterArgs cli.StringSlice

	NoLayouts      bool
	FollowSymlinks bool
	Strict         bool
}

// NewDatabaseOptions returns options bound to the global ones.
func NewDatabaseOptions(opts *options.Options) *DatabaseOptions {
	return &DatabaseOptions{Options: opts}
}

// NewDatabaseFlags returns the flags selecting a collection and filtering it.
func NewDatabaseFlags(opts *DatabaseOptions) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        RootFlagName,
			EnvVars:     flags.EnvVars(RootFlagName),
			Destination: &opts.Root,
			Usage:       "Directory holding the collection. Overrides the path of the selected database.",
		},
		&cli.StringFlag{
			Name:        ProductFlagName,
			Aliases:     []string{"p"},
			EnvVars:     flags.EnvVars(ProductFlagName),
			Destination: &opts.Product,
			Usage:       "Product of the collection: " + strings.Join(products.Names(), ", ") + ".",
		},
		&cli.StringFlag{
			Name:        DatabaseFlagName,
			Aliases:     []string{"d"},
			EnvVars:     flags.EnvVars(DatabaseFlagName),
			Destination: &opts.Database,
			Usage:       "Label of a database declared in the catalog config file.",
		},
		&cli.StringSliceFlag{
			Name:        FilterFlagName,
			Aliases:     []string{"f"},
			Destination: &opts.FilterArgs,
			Usage:       "Filter query, e.g. cycle_number=1..10 or 'subset=Expert|!pass_number=1,2'. Can be repeated.",
		},
		&cli.BoolFlag{
			Name:        NoLayoutsFlagName,
			EnvVars:     flags.EnvVars(NoLayoutsFlagName),
			Destination: &opts.NoLayouts,
			Usage:       "Match every file of the tree against the file naming convention instead of walking the product layouts.",
		},
		&cli.BoolFlag{
			Name:        FollowSymlinksFlagName,
			EnvVars:     flags.EnvVars(FollowSymlinksFlagName),
			Destination: &opts.FollowSymlinks,
			Usage:       "Follow symbolic links to directories and files.",
		},
		&cli.BoolFlag{
			Name:        StrictFlagName,
			EnvVars:     flags.EnvVars(StrictFlagName),
			Destination: &opts.Strict,
			Usage:       "Fail instead of warning when a directory does not follow any layout.",
		},
	}
}

// Selection is a database opened from the command line along with the filters
// to apply to it.
type Selection struct {
	DB      *database.Database
	Filters field.Filters
}

// Open opens the selected collection. Flags override the values of the
// database declared in the config file.
func (opts *DatabaseOptions) Open(_ context.Context, extra ...database.Option) (*Selection, error) {
	decl := &catalogconfig.DatabaseConfig{}

	if opts.Database != "" {
		var err error
		if decl, err = opts.Config.Database(opts.Database); err != nil {
			return nil, err
		}
	}

	productName := firstNonEmpty(opts.Product, decl.Product)
	if productName == "" {
		return nil, errors.New(MissingFlagError{Flag: ProductFlagName})
	}

	root := firstNonEmpty(opts.Root, decl.Path)
	if root == "" {
		return nil, errors.New(MissingFlagError{Flag: RootFlagName})
	}

	root, err := opts.resolvePath(root)
	if err != nil {
		return nil, err
	}

	product, err := products.Lookup(productName)
	if err != nil {
		return nil, err
	}

	filters, err := opts.filters(product, decl)
	if err != nil {
		return nil, err
	}

	dbOpts := append(decl.Options(),
		database.WithLogger(opts.Logger),
		database.WithNumWorkers(opts.Workers),
	)

	if opts.Telemeter != nil {
		dbOpts = append(dbOpts, database.WithTelemeter(opts.Telemeter))
	}

	if opts.NoLayouts {
		dbOpts = append(dbOpts, database.WithoutLayouts())
	}

	if opts.FollowSymlinks {
		dbOpts = append(dbOpts, database.WithFollowSymlinks())
	}

	if opts.Strict {
		dbOpts = append(dbOpts, database.WithStrict())
	}

	db, err := database.New(opts.FS, root, product, append(dbOpts, extra...)...)
	if err != nil {
		return nil, err
	}

	return &Selection{DB: db, Filters: filters}, nil
}

// filters merges the filters of the declaration with the --filter queries. A
// field named by a query loses its declared filter.
func (opts *DatabaseOptions) filters(product *database.Product, decl *catalogconfig.DatabaseConfig) (field.Filters, error) {
	texts, err := decl.FilterTexts()
	if err != nil {
		return nil, err
	}

	filters, err := catalogconfig.ParseFilters(product, texts)
	if err != nil {
		return nil, err
	}

	queries := opts.FilterArgs.Value()

	overrides, err := filter.ParseFilters(queries, filter.Schema(product.Schema()))
	if err != nil {
		var parseErr filter.ParseError
		if errors.As(err, &parseErr) {
			index := 0
			if len(queries) > 1 {
				index = slices.Index(queries, parseErr.Query) + 1
			}

			_, _ = io.WriteString(opts.ErrWriter, filter.FormatDiagnostic(parseErr, index, ShouldColor(opts.Options)))
		}

		return nil, err
	}

	maps.Copy(filters, overrides)

	return filters, nil
}

// resolvePath expands `~` and makes path absolute against the working directory.
func (opts *DatabaseOptions) resolvePath(path string) (string, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return "", errors.New(err)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.WorkingDir, path)
	}

	return filepath.Clean(path), nil
}

// ParseFilterArgs splits `<field>=<text>` arguments.
func ParseFilterArgs(args []string) (map[string]string, error) {
	texts := make(map[string]string, len(args))

	for _, arg := range args {
		name, text, ok := strings.Cut(arg, filterSeparator)

		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New(InvalidFilterError{Arg: arg})
		}

		texts[name] = text
	}

	return texts, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
