// Package fs provides file-based storage for documents, their metadata
// records and their backups.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmlpatch"
)

// HashContent computes a hash of the content using xxhash.
func HashContent(content []byte) string {
	h := xxhash.Sum64(content)
	return fmt.Sprintf("%x", h)
}

// splitName splits the base name of path into stem and extension.
func splitName(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// readFile reads path, mapping a missing file to ENOTFOUND.
func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "file not found: %s", path)
	}
	return content, err
}

// writeFileAtomic writes content to a temp file next to path and renames it
// into place, so readers see either the old or the new content. The mode of
// an existing file is kept.
func writeFileAtomic(path string, content []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
