package catalogconfig

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/vfs"
)

const (
	// DefaultConfigFilename is the name of the file looked up by DiscoveryPath.
	DefaultConfigFilename = "fcollections.hcl"
	ConfigXDGDir          = "fcollections"

	gitDir = ".git"
)

func getRepoDir(fs vfs.FS, baseDir string) string {
	const maxPathWalking = 100

	for range maxPathWalking {
		if isDir(fs, filepath.Join(baseDir, gitDir)) {
			return baseDir
		}

		if parentDir := filepath.Dir(baseDir); parentDir != baseDir {
			baseDir = parentDir
		} else {
			break
		}
	}

	return ""
}

// ConfigDirs returns the user level directories holding a config file: the XDG
// config directory, then the home directory.
func ConfigDirs() ([]string, error) {
	var dirs []string

	if xdgDir := os.Getenv("XDG_CONFIG_HOME"); xdgDir != "" {
		dirs = append(dirs, filepath.Join(xdgDir, ConfigXDGDir))
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, errors.New(err)
	}

	return append(dirs, home), nil
}

// DiscoveryPath returns the first config file found in baseDir, the root of its
// git repository, the .config directory of that repository and the user config
// directories. It returns an empty path when there is none.
func DiscoveryPath(fs vfs.FS, baseDir string) (string, error) {
	dirs := []string{
		baseDir,
	}

	if repoDir := getRepoDir(fs, baseDir); repoDir != "" {
		dirs = append(dirs, []string{
			repoDir,
			filepath.Join(repoDir, ".config"),
		}...)
	}

	configDirs, err := ConfigDirs()
	if err != nil {
		return "", err
	}

	dirs = append(dirs, configDirs...)

	for _, dir := range dirs {
		if !isDir(fs, dir) {
			continue
		}

		path := filepath.Join(dir, DefaultConfigFilename)

		if exists, _ := vfs.FileExists(fs, path); exists {
			return path, nil
		}
	}

	return "", nil
}

func isDir(fs vfs.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
