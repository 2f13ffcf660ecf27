// Package cli assembles the fcollections command line application.
package cli

import (
	"os"

	"dario.cat/mergo"
	"github.com/gruntwork-io/go-commons/env"
	"github.com/gruntwork-io/go-commons/version"
	"github.com/urfave/cli/v2"

	"github.com/fcollections/fcollections/cli/commands/coverage"
	"github.com/fcollections/fcollections/cli/commands/download"
	"github.com/fcollections/fcollections/cli/commands/generate"
	"github.com/fcollections/fcollections/cli/commands/list"
	"github.com/fcollections/fcollections/cli/commands/products"
	"github.com/fcollections/fcollections/cli/commands/variables"
	"github.com/fcollections/fcollections/cli/flags/global"
	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/telemetry"
	"github.com/fcollections/fcollections/options"
	"github.com/fcollections/fcollections/pkg/log"
)

const AppName = "fcollections"

// NewApp creates the fcollections CLI App.
func NewApp(opts *options.Options) *cli.App {
	return &cli.App{
		Name:      AppName,
		Usage:     "List, filter and resolve the files of collections organized by naming conventions.",
		UsageText: AppName + " [global options] <command> [command options]",
		Version:   version.GetVersion(),
		Writer:    opts.Writer,
		ErrWriter: opts.ErrWriter,
		Flags:     global.NewFlags(opts),
		Commands: []*cli.Command{
			list.NewCommand(opts),
			generate.NewCommand(opts),
			coverage.NewCommand(opts),
			download.NewCommand(opts),
			variables.NewCommand(opts),
			products.NewCommand(opts),
		},
		Before: func(cctx *cli.Context) error {
			if err := initialSetup(cctx, opts); err != nil {
				return err
			}

			cctx.Context = log.ContextWithLogger(cctx.Context, opts.Logger)
			cctx.Context = telemetry.ContextWithTelemeter(cctx.Context, opts.Telemeter)

			return nil
		},
		After: func(cctx *cli.Context) error {
			if opts.Telemeter == nil {
				return nil
			}

			return opts.Telemeter.Shutdown(cctx.Context)
		},
		EnableBashCompletion: true,
		// Filter queries use commas for lists of values.
		DisableSliceFlagSeparator: true,
	}
}

// settings are the global settings read from both the flags and the config
// file. Flags win over the file.
type settings struct {
	LogLevel  string
	LogFormat string
	Workers   int
}

func initialSetup(cctx *cli.Context, opts *options.Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	opts.Config = cfg

	resolved := settings{LogLevel: opts.LogLevel, LogFormat: opts.LogFormat, Workers: opts.Workers}
	fromConfig := settings{LogLevel: cfg.LogLevel, LogFormat: cfg.LogFormat, Workers: cfg.Workers}

	if err := mergo.Merge(&resolved, fromConfig); err != nil {
		return errors.New(err)
	}

	opts.LogLevel, opts.LogFormat, opts.Workers = resolved.LogLevel, resolved.LogFormat, resolved.Workers

	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}

	formatter, err := log.ParseFormat(opts.LogFormat)
	if err != nil {
		return err
	}

	opts.Logger.SetOptions(log.WithLevel(level), log.WithFormatter(formatter), log.WithOutput(opts.ErrWriter))

	tlm, err := telemetry.NewTelemeter(cctx.Context, AppName, cctx.App.Version, opts.ErrWriter, telemetry.NewOptions(env.Parse(os.Environ())))
	if err != nil {
		return err
	}

	opts.Telemeter = tlm
	opts.Logger = opts.Logger.WithField(telemetry.RunIDAttribute, tlm.RunID())

	if cfg.ConfigPath != "" {
		opts.Logger.Debugf("Loaded catalog config %s", cfg.ConfigPath)
	}

	return nil
}

// loadConfig reads the file given with --config, or the discovered one. Only
// an explicit path must exist.
func loadConfig(opts *options.Options) (*catalogconfig.Config, error) {
	path := opts.ConfigPath

	if path == "" {
		discovered, err := catalogconfig.DiscoveryPath(opts.FS, opts.WorkingDir)
		if err != nil {
			return nil, err
		}

		if discovered == "" {
			return catalogconfig.Default(), nil
		}

		path = discovered
	}

	return catalogconfig.LoadConfig(opts.FS, path)
}
