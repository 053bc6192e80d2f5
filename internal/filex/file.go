// Package filex has filesystem helpers for the client's local data.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) with owner/group-only permissions and
// returns its absolute path. Relative paths are resolved against the current
// working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// EnsureParentDir makes sure the directory holding file exists and returns
// the absolute path of file.
func EnsureParentDir(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", file, err)
	}
	if _, err := EnsureDir(filepath.Dir(abs)); err != nil {
		return "", err
	}
	return abs, nil
}

// ReadUpload opens a file picked for upload and returns its base name along
// with the open handle. The caller closes the file.
func ReadUpload(path string) (string, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return "", nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		_ = f.Close()
		return "", nil, fmt.Errorf("%s is a directory", path)
	}
	return filepath.Base(path), f, nil
}
