// Package options provides the settings shared by every fcollections command.
package options

import (
	"io"
	"os"
	"runtime"

	"github.com/fcollections/fcollections/internal/catalogconfig"
	"github.com/fcollections/fcollections/internal/telemetry"
	"github.com/fcollections/fcollections/internal/vfs"
	"github.com/fcollections/fcollections/pkg/log"
)

const (
	DefaultLogLevel  = log.InfoLevel
	DefaultLogFormat = log.PrettyFormatName
)

// Options represents the global options of the fcollections program.
type Options struct {
	// Writer receives the command results.
	Writer io.Writer
	// ErrWriter receives the logs.
	ErrWriter io.Writer
	Logger    log.Logger
	// FS is the filesystem the collections are read from.
	FS vfs.FS
	// Config is the catalog config file, or the defaults when none is found.
	Config    *catalogconfig.Config
	Telemeter *telemetry.Telemeter
	// ConfigPath is the catalog config file given on the command line.
	ConfigPath string
	LogLevel   string
	LogFormat  string
	WorkingDir string
	Workers    int
	// NoColor disables colored output even on a terminal.
	NoColor bool
}

// NewOptions returns the options used when no flag is set.
func NewOptions() *Options {
	workingDir, _ := os.Getwd()

	return &Options{
		Writer:     os.Stdout,
		ErrWriter:  os.Stderr,
		Logger:     log.New(log.WithOutput(os.Stderr), log.WithLevel(DefaultLogLevel)),
		FS:         vfs.NewOSFS(),
		Config:     catalogconfig.Default(),
		WorkingDir: workingDir,
		Workers:    runtime.NumCPU(),
	}
}
