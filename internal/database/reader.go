package database

import (
	"context"

	"github.com/fcollections/fcollections/internal/vfs"
)

// Dataset is the opaque result of a Reader.
type Dataset any

// Reader opens an ordered list of files as one dataset.
type Reader interface {
	Read(ctx context.Context, fs vfs.FS, paths []string) (Dataset, error)
}

// MetadataReader is implemented by readers able to describe the variables of a
// file without reading its data.
type MetadataReader interface {
	Metadata(ctx context.Context, fs vfs.FS, path string) (any, error)
}
