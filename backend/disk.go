package backend

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Disk is the plain filesystem provider. It accepts every path, so it
// belongs at the bottom of the registry.
type Disk struct{}

func (Disk) Name() string { return "disk" }

func (Disk) CanHandle(string) bool { return true }

// List returns the files directly inside dir, forward-slashed and sorted.
func (Disk) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, path.Join(dir, e.Name()))
	}
	return out, nil
}

func (Disk) Exists(p string) (bool, error) {
	_, err := os.Stat(filepath.FromSlash(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Tracked always reports false; plain disk has no version control.
func (Disk) Tracked(string) (bool, error) { return false, nil }

func (Disk) Move(oldPath, newPath string) error {
	return os.Rename(filepath.FromSlash(oldPath), filepath.FromSlash(newPath))
}
