// Package filex resolves where saved archives land and writes them safely.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName under the working directory and returns its
// absolute path. An absolute dirName is used as-is.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ResolveTarget picks the file a save should write to:
//   - empty path: fileName inside defaultDir (created on demand);
//   - an existing directory: fileName inside it;
//   - anything else: path itself, with its parent created.
func ResolveTarget(path, defaultDir, fileName string) (string, error) {
	if path == "" {
		dir, err := EnsureSubdDir(defaultDir)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, fileName), nil
	}

	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return filepath.Join(path, fileName), nil
	}

	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", parent, err)
	}
	return path, nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never see a half-written archive.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
