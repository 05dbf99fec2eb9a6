package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/htmlpatch"
)

// DefaultPattern matches the documents a batch picks up.
const DefaultPattern = "*.html"

// FindHTMLFiles returns every file below root whose base name matches
// pattern, sorted. Directories named in skip are not entered.
func FindHTMLFiles(root, pattern string, skip ...string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "invalid file pattern %q", pattern)
	}

	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, htmlpatch.Errorf(htmlpatch.ENOTFOUND, "folder not found: %s", root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "not a folder: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(skip, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
