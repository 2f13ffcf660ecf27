// Package catalogconfig loads the HCL file declaring the file collections
// known to the command line, along with the defaults of the global flags.
//
//	log_level = "info"
//	workers   = 4
//
//	database "swot" {
//	  product         = "swot_l2_lr_ssh"
//	  path            = "~/data/swot"
//	  enable_layouts  = true
//	  follow_symlinks = false
//	  strict          = false
//	  filters         = { subset = "Expert", pass_number = [11, 12] }
//	}
package catalogconfig

import (
	"path/filepath"
	"reflect"
	"runtime"
	"slices"

	"dario.cat/mergo"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mitchellh/go-homedir"
	"github.com/zclconf/go-cty/cty"

	"github.com/fcollections/fcollections/internal/ctyhelper"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/vfs"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// Config is the structure of the catalog config file.
type Config struct {
	LogLevel  string            `hcl:"log_level,optional"`
	LogFormat string            `hcl:"log_format,optional"`
	Databases []*DatabaseConfig `hcl:"database,block"`
	Workers   int               `hcl:"workers,optional"`

	// ConfigPath is the file the config was read from.
	ConfigPath string
}

// DatabaseConfig declares one collection of files.
type DatabaseConfig struct {
	Filters        cty.Value `hcl:"filters,optional"`
	EnableLayouts  *bool     `hcl:"enable_layouts,optional"`
	Name           string    `hcl:"name,label"`
	Product        string    `hcl:"product,attr"`
	Path           string    `hcl:"path,attr"`
	FollowSymlinks bool      `hcl:"follow_symlinks,optional"`
	Strict         bool      `hcl:"strict,optional"`
}

// Default returns the config used when no file is found.
func Default() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Workers:   runtime.NumCPU(),
	}
}

// LoadConfig returns the configuration loaded from path, completed with the
// defaults.
func LoadConfig(fs vfs.FS, path string) (*Config, error) {
	exists, err := vfs.FileExists(fs, path)
	if err != nil {
		return nil, NewFileReadError(path, err)
	}

	if !exists {
		return nil, NewNotFoundError(path)
	}

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, NewFileReadError(path, err)
	}

	return ParseConfig(data, path)
}

// ParseConfig decodes the content of a config file. Relative database paths are
// resolved against the directory of path.
func ParseConfig(data []byte, path string) (cfg *Config, err error) {
	// gohcl and the cty conversions panic on some malformed inputs.
	defer func() {
		if recovered := recover(); recovered != nil {
			err = NewDecodeError(path, errors.Errorf("recovered panic of type %v: %v", reflect.TypeOf(recovered), recovered))
		}
	}()

	cfg = &Config{}

	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)

	switch filepath.Ext(path) {
	case ".json":
		file, diags = parser.ParseJSON(data, path)
	default:
		file, diags = parser.ParseHCL(data, path)
	}

	if diags.HasErrors() {
		return nil, NewDecodeError(path, diags)
	}

	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, NewDecodeError(path, diags)
	}

	cfg.ConfigPath = path

	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, NewDecodeError(path, err)
	}

	if err := cfg.resolve(); err != nil {
		return nil, NewDecodeError(path, err)
	}

	return cfg, nil
}

func (cfg *Config) resolve() error {
	if cfg.Workers < 0 {
		return errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}

	names := make(map[string]struct{}, len(cfg.Databases))

	for _, db := range cfg.Databases {
		if _, ok := names[db.Name]; ok {
			return errors.New(DuplicateDatabaseError{Name: db.Name})
		}

		names[db.Name] = struct{}{}

		path, err := homedir.Expand(db.Path)
		if err != nil {
			return errors.New(err)
		}

		if !filepath.IsAbs(path) && cfg.ConfigPath != "" {
			path = filepath.Join(filepath.Dir(cfg.ConfigPath), path)
		}

		db.Path = filepath.Clean(path)
	}

	return nil
}

// DatabaseNames returns the declared database names in lexical order.
func (cfg *Config) DatabaseNames() []string {
	names := make([]string, 0, len(cfg.Databases))
	for _, db := range cfg.Databases {
		names = append(names, db.Name)
	}

	slices.Sort(names)

	return names
}

// Database returns the database declared with the given label.
func (cfg *Config) Database(name string) (*DatabaseConfig, error) {
	for _, db := range cfg.Databases {
		if db.Name == name {
			return db, nil
		}
	}

	return nil, errors.New(UnknownDatabaseError{Name: name, Known: cfg.DatabaseNames()})
}

// LayoutsEnabled reports whether the discovery uses the product layouts. It
// defaults to true.
func (db *DatabaseConfig) LayoutsEnabled() bool {
	return db.EnableLayouts == nil || *db.EnableLayouts
}

// FilterTexts returns the textual reference of each declared filter.
func (db *DatabaseConfig) FilterTexts() (map[string]string, error) {
	texts, err := ctyhelper.FilterTexts(db.Filters)
	if err != nil {
		return nil, errors.Errorf("database %q: %w", db.Name, err)
	}

	return texts, nil
}

// Options returns the database options matching the declaration.
func (db *DatabaseConfig) Options() []database.Option {
	var opts []database.Option

	if !db.LayoutsEnabled() {
		opts = append(opts, database.WithoutLayouts())
	}

	if db.FollowSymlinks {
		opts = append(opts, database.WithFollowSymlinks())
	}

	if db.Strict {
		opts = append(opts, database.WithStrict())
	}

	return opts
}

// ParseFilters parses textual references with the fields of product. A name
// that is not a product field is a field.UnknownFieldError.
func ParseFilters(product *database.Product, texts map[string]string) (field.Filters, error) {
	filters := make(field.Filters, len(texts))
	schema := product.Schema()

	for name, text := range texts {
		f, ok := field.Find(schema, name)
		if !ok {
			return nil, field.NewUnknownFieldError(name, product.Names())
		}

		ref, err := f.ParseReference(text)
		if err != nil {
			return nil, err
		}

		filters[name] = ref
	}

	return filters, nil
}
