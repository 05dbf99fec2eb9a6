package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/htmlpatch"
	main "github.com/fwojciec/htmlpatch/cmd/htmlpatch"
	"github.com/fwojciec/htmlpatch/fs"
	"github.com/fwojciec/htmlpatch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<!DOCTYPE html>
<html><head><title>Casino guide</title><meta name="description" content="Old description"></head>
<body>
<main>
<h2>Welcome bonuses</h2>
<p>First bonus paragraph here.</p>
<p>Second bonus paragraph here.</p>
</main>
</body>
</html>
`

func writePage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(pageHTML), 0644))
}

// confirm fills in rewritten content as the external editor would.
func confirm(t *testing.T, metaPath string) {
	t.Helper()
	ctx := context.Background()
	store := fs.NewMetaStore()
	meta, err := store.Load(ctx, metaPath)
	require.NoError(t, err)
	require.Len(t, meta.Sections, 1)
	meta.RewrittenTitle = "New casino guide"
	meta.Sections[0].RewrittenContent = "First new.\n\nSecond new."
	meta.Status = htmlpatch.StatusRewritten
	require.NoError(t, store.Save(ctx, metaPath, meta))
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// Story: Rewrite a single page
//
// As a site editor
// I want to extract a page, rewrite it and patch it back
// So that the page carries new text with its markup intact
func TestMain_Run_SinglePage(t *testing.T) {
	t.Parallel()

	// Given a page on disk
	dir := t.TempDir()
	page := filepath.Join(dir, "site", "index.html")
	writePage(t, page)
	out := filepath.Join(dir, "out")
	metaPath := filepath.Join(out, "index_meta.json")
	m := &main.Main{}

	// When I parse it
	stdout, _, err := run(t, m, "parse", page, "--out", out)

	// Then a record is saved with its one section
	require.NoError(t, err)
	assert.Contains(t, stdout, "Extracted 1 sections")
	assert.Contains(t, stdout, metaPath)
	assert.FileExists(t, metaPath)

	// And update is refused until the record is rewritten
	_, stderr, err := run(t, m, "update", metaPath)
	assert.Equal(t, htmlpatch.ENOTREADY, htmlpatch.ErrorCode(err))
	assert.Contains(t, stderr, "htmlpatch prepare")

	// When I prepare it
	stdout, _, err = run(t, m, "prepare", metaPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "### Section [0] - h2")
	assert.Contains(t, stdout, "**Heading:** Welcome bonuses")

	// And preview the rewritten record
	confirm(t, metaPath)
	stdout, _, err = run(t, m, "update", metaPath, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Title: New casino guide")
	assert.Equal(t, pageHTML, readPage(t, page), "dry run leaves the page alone")

	// Then updating writes the new text
	stdout, _, err = run(t, m, "update", metaPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Paragraphs: 2")
	content := readPage(t, page)
	assert.Contains(t, content, "<title>New casino guide</title>")
	assert.Contains(t, content, "<p>First new.</p>")
	assert.Contains(t, content, "responsible-content-notice")

	// And rolling back restores the original bytes
	stdout, _, err = run(t, m, "rollback", metaPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Restored "+page)
	assert.Equal(t, pageHTML, readPage(t, page))
}

func TestMain_Run_ParseWritesRecordNextToPage(t *testing.T) {
	t.Parallel()

	page := filepath.Join(t.TempDir(), "index.html")
	writePage(t, page)

	_, _, err := run(t, &main.Main{}, "parse", page)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(page), "index_meta.json"))
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	// Given a config that renames the backup folder, stamps markers and
	// restyles the notice
	dir := t.TempDir()
	page := filepath.Join(dir, "site", "index.html")
	writePage(t, page)
	config := filepath.Join(dir, "htmlpatch.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
backup_dir: snapshots
markers: true
notice:
  class: site-note
  text: Play safe
`), 0644))
	m := &main.Main{ConfigPath: config}

	// When I parse and update the page
	_, _, err := run(t, m, "parse", page)
	require.NoError(t, err)
	metaPath := filepath.Join(dir, "site", "index_meta.json")
	assert.Contains(t, readPage(t, page), "data-htmlpatch-key=")
	confirm(t, metaPath)
	_, _, err = run(t, m, "update", metaPath)
	require.NoError(t, err)

	// Then backups land in the configured folder and the notice is restyled
	backups, err := os.ReadDir(filepath.Join(dir, "site", "snapshots"))
	require.NoError(t, err)
	assert.Len(t, backups, 2)
	content := readPage(t, page)
	assert.Contains(t, content, "First new.</p>")
	assert.Contains(t, content, `class="site-note"`)
	assert.Contains(t, content, "Play safe")
	assert.NotContains(t, content, "responsible-content-notice")
}

func TestMain_Run_NoticeCannotBeSwitchedOff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	writePage(t, page)
	config := filepath.Join(dir, "htmlpatch.yaml")
	require.NoError(t, os.WriteFile(config, []byte("notice:\n  disabled: true\n"), 0644))
	m := &main.Main{ConfigPath: config}

	_, _, err := run(t, m, "parse", page)
	require.NoError(t, err)
	metaPath := filepath.Join(dir, "index_meta.json")
	confirm(t, metaPath)
	_, _, err = run(t, m, "update", metaPath)

	require.NoError(t, err)
	assert.Contains(t, readPage(t, page), "responsible-content-notice")
}

func TestMain_Run_MissingConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	writePage(t, page)

	_, stderr, err := run(t, &main.Main{}, "--config", filepath.Join(dir, "nope.yaml"), "parse", page)

	assert.Equal(t, htmlpatch.ENOTFOUND, htmlpatch.ErrorCode(err))
	assert.Contains(t, stderr, "HTMLPATCH_CONFIG")
	assert.NoFileExists(t, filepath.Join(dir, "index_meta.json"))
}

func TestMain_Run_Review(t *testing.T) {
	t.Parallel()

	page := filepath.Join(t.TempDir(), "index.html")
	writePage(t, page)

	stdout, _, err := run(t, &main.Main{}, "review", page)

	require.NoError(t, err)
	assert.Contains(t, stdout, "## Welcome bonuses")
	assert.Contains(t, stdout, "First bonus paragraph here.")
	assert.NotContains(t, stdout, "<p>")
}

// Story: Rewrite a whole site
//
// As a site editor
// I want to parse every page below a folder and update the rewritten ones
// So that a partly rewritten site can be patched safely
func TestMain_Run_Batch(t *testing.T) {
	t.Parallel()

	// Given a folder with two pages
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	writePage(t, filepath.Join(site, "alpha", "one.html"))
	writePage(t, filepath.Join(site, "beta", "two.html"))
	out := filepath.Join(site, main.DefaultMetaDir)
	m := &main.Main{}

	// When I parse the folder
	stdout, _, err := run(t, m, "batch", "parse", site)

	// Then both pages are parsed into the default output folder
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 files")
	assert.Contains(t, stdout, "Parsed: 2, failed: 0")
	one := filepath.Join(out, "alpha", "one_meta.json")
	assert.FileExists(t, one)
	assert.FileExists(t, filepath.Join(out, "beta", "two_meta.json"))

	batchID := onlyBatchID(t, filepath.Join(out, "batch.db"))

	// And status reports them as parsed
	stdout, _, err = run(t, m, "batch", "status", batchID, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "parsed:    2")

	// When only one record is rewritten and I update the batch
	confirm(t, one)
	stdout, _, err = run(t, m, "batch", "update", batchID, "--out", out)

	// Then one page is updated and the other skipped
	require.NoError(t, err)
	assert.Contains(t, stdout, "Updated: 1, failed: 0, skipped: 1")
	assert.Contains(t, readPage(t, filepath.Join(site, "alpha", "one.html")), "First new.</p>")
	assert.Equal(t, pageHTML, readPage(t, filepath.Join(site, "beta", "two.html")))

	// And listing parsed files shows the one still waiting
	stdout, _, err = run(t, m, "--db", filepath.Join(out, "batch.db"), "batch", "list", batchID, "--status", "parsed")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join("beta", "two.html"))
	assert.NotContains(t, stdout, filepath.Join("alpha", "one.html"))
}

func TestMain_Run_BatchWithoutDatabase(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, &main.Main{}, "batch", "status", "b-1")

	assert.Equal(t, htmlpatch.EINVALID, htmlpatch.ErrorCode(err))
	assert.Contains(t, stderr, "--out")
}

func onlyBatchID(t *testing.T, path string) string {
	t.Helper()
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	defer db.Close()

	batches, err := sqlite.NewBatchService(db).FindBatches(context.Background(), htmlpatch.BatchFilter{})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	return batches[0].ID
}
