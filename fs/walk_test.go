package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindHTMLFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.html"), "")
	writeFile(t, filepath.Join(root, "a.html"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")
	writeFile(t, filepath.Join(root, "guides", "c.html"), "")
	writeFile(t, filepath.Join(root, "guides", fs.DefaultBackupDir, "c_20240101-000000.html.bak"), "")
	writeFile(t, filepath.Join(root, fs.DefaultBackupDir, "a.html"), "")

	t.Run("finds html files recursively in sorted order", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FindHTMLFiles(root, "", fs.DefaultBackupDir)

		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.html"),
			filepath.Join(root, "b.html"),
			filepath.Join(root, "guides", "c.html"),
		}, got)
	})

	t.Run("applies custom pattern", func(t *testing.T) {
		t.Parallel()

		got, err := fs.FindHTMLFiles(root, "*.txt")

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "notes.txt")}, got)
	})

	t.Run("missing folder", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FindHTMLFiles(filepath.Join(root, "missing"), "")

		assert.Equal(t, htmlpatch.ENOTFOUND, htmlpatch.ErrorCode(err))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FindHTMLFiles(root, "[")

		assert.Equal(t, htmlpatch.EINVALID, htmlpatch.ErrorCode(err))
	})
}
