// Package vfs provides a virtual filesystem abstraction for testing and production use.
// It wraps afero to provide a consistent interface for the listing, stat and symlink
// resolution primitives used by discovery, plus the few write helpers used by downloads.
package vfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/spf13/afero"
)

// maxLinkHops bounds symlink resolution so that link loops terminate.
const maxLinkHops = 255

// ErrTooManyLinks is returned by Canonical when a path goes through more than maxLinkHops links.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// FS is the filesystem interface used throughout the codebase.
// It provides an abstraction over real and in-memory filesystems.
type FS = afero.Fs

// Entry is a directory child as returned by ReadDir. Info describes the entry itself:
// symbolic links are not followed.
type Entry struct {
	Info os.FileInfo
	Name string
}

// IsSymlink reports whether the entry is a symbolic link.
func (entry Entry) IsSymlink() bool {
	return IsSymlink(entry.Info)
}

// NewOSFS returns a filesystem backed by the real operating system filesystem.
func NewOSFS() FS {
	return afero.NewOsFs()
}

// NewMemMapFS returns an in-memory filesystem for testing purposes.
func NewMemMapFS() FS {
	return afero.NewMemMapFs()
}

// ReadDir lists the immediate children of dir, sorted by name.
func ReadDir(fs FS, dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.New(err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), Info: info})
	}

	return entries, nil
}

// Lstat returns the file info of path without following a final symbolic link,
// when the filesystem supports it.
func Lstat(fs FS, path string) (os.FileInfo, error) {
	if lstater, ok := fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}

	return fs.Stat(path)
}

// IsSymlink reports whether info describes a symbolic link.
func IsSymlink(info os.FileInfo) bool {
	return info != nil && info.Mode()&os.ModeSymlink != 0
}

// Join joins path elements with the OS separator.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Canonical returns path with every symbolic link resolved, in the manner of filepath.EvalSymlinks
// but through the given filesystem. Filesystems without link support return the cleaned path.
func Canonical(fs FS, path string) (string, error) {
	lstater, canLstat := fs.(afero.Lstater)
	reader, canReadlink := fs.(afero.LinkReader)

	if !canLstat || !canReadlink {
		return filepath.Clean(path), nil
	}

	resolved := "."
	if filepath.IsAbs(path) {
		resolved = filepath.VolumeName(path) + string(filepath.Separator)
	}

	remaining := splitPath(path)

	for hops := 0; len(remaining) > 0; {
		elem := remaining[0]
		remaining = remaining[1:]

		switch elem {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, elem)

		info, _, err := lstater.LstatIfPossible(next)
		if err != nil {
			return "", errors.New(err)
		}

		if !IsSymlink(info) {
			resolved = next
			continue
		}

		if hops++; hops > maxLinkHops {
			return "", errors.Errorf("%s: %w", path, ErrTooManyLinks)
		}

		target, err := reader.ReadlinkIfPossible(next)
		if err != nil {
			return "", errors.New(err)
		}

		if filepath.IsAbs(target) {
			resolved = filepath.VolumeName(target) + string(filepath.Separator)
		}

		remaining = append(splitPath(target), remaining...)
	}

	return resolved, nil
}

func splitPath(path string) []string {
	path = strings.TrimPrefix(path, filepath.VolumeName(path))

	var elems []string

	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		if elem != "" {
			elems = append(elems, elem)
		}
	}

	return elems
}

// FileExists checks if a path exists using the given filesystem.
// Returns (true, nil) if the file exists, (false, nil) if it does not exist,
// and (false, error) for other errors (e.g., permission denied).
func FileExists(fs FS, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// WriteFile writes data to a file on the given filesystem, creating the parent
// directories.
func WriteFile(fs FS, filename string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return err
	}

	return afero.WriteFile(fs, filename, data, perm)
}

// ReadFile reads the contents of a file from the given filesystem.
func ReadFile(fs FS, filename string) ([]byte, error) {
	return afero.ReadFile(fs, filename)
}

// Symlink creates a symbolic link on filesystems implementing afero.Linker.
func Symlink(fs FS, oldname, newname string) error {
	linker, ok := fs.(afero.Linker)
	if !ok {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
	}

	return linker.SymlinkIfPossible(oldname, newname)
}

// CopyFile copies srcPath from src into dstPath on dst, creating parent directories
// and keeping the source permission bits.
func CopyFile(src FS, srcPath string, dst FS, dstPath string) error {
	info, err := src.Stat(srcPath)
	if err != nil {
		return errors.New(err)
	}

	if err := dst.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		return errors.Errorf("failed to create directory %q: %w", filepath.Dir(dstPath), err)
	}

	in, err := src.Open(srcPath)
	if err != nil {
		return errors.New(err)
	}
	defer in.Close() //nolint:errcheck

	out, err := dst.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("failed to create file %q: %w", dstPath, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck
		return errors.Errorf("failed to copy %q: %w", srcPath, err)
	}

	return errors.New(out.Close())
}
