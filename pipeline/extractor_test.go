package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/goquery"
	"github.com/fwojciec/htmlpatch/mock"
	"github.com/fwojciec/htmlpatch/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("saves pending record next to output", func(t *testing.T) {
		t.Parallel()

		env := newDiskEnv(t, goquery.NewSegmenter())
		out := filepath.Join(env.dir, "out")

		meta, metaPath, err := env.extractor.Extract(context.Background(), env.page, out)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "page_meta.json"), metaPath)
		assert.Equal(t, env.page, meta.SourceFile)
		assert.Equal(t, "Casino guide", meta.OriginalTitle)
		assert.Equal(t, "Old description", meta.OriginalDescription)
		assert.Equal(t, htmlpatch.StatusPendingRewrite, meta.Status)
		assert.Equal(t, 1, meta.TotalSections)
		assert.Equal(t, fixedNow(), meta.ExtractedAt)
		assert.NotEmpty(t, meta.SourceHash)

		backup, err := os.ReadFile(meta.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, pageHTML, string(backup))

		saved, err := env.meta.Load(context.Background(), metaPath)
		require.NoError(t, err)
		require.Len(t, saved.Sections, 1)
		assert.Equal(t, "Welcome bonuses", saved.Sections[0].HeadingText)

		content, err := os.ReadFile(env.page)
		require.NoError(t, err)
		assert.Equal(t, pageHTML, string(content), "source untouched without markers")
	})

	t.Run("writes markers into source", func(t *testing.T) {
		t.Parallel()

		env := newDiskEnv(t, goquery.NewSegmenter(goquery.WithMarkers()))

		meta, _, err := env.extractor.Extract(context.Background(), env.page, filepath.Join(env.dir, "out"))

		require.NoError(t, err)
		require.Len(t, meta.Sections, 1)
		assert.True(t, meta.Sections[0].Marked())

		content, err := os.ReadFile(env.page)
		require.NoError(t, err)
		assert.Contains(t, string(content), `data-htmlpatch-key="`+meta.Sections[0].HeadingMarker+`"`)

		backup, err := os.ReadFile(meta.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, pageHTML, string(backup), "backup holds the unmarked original")
	})

	t.Run("marked document patches after text drift", func(t *testing.T) {
		t.Parallel()

		env := newDiskEnv(t, goquery.NewSegmenter(goquery.WithMarkers()))
		ctx := context.Background()
		_, metaPath, err := env.extractor.Extract(ctx, env.page, filepath.Join(env.dir, "out"))
		require.NoError(t, err)

		content, err := os.ReadFile(env.page)
		require.NoError(t, err)
		drifted := []byte(replaceAll(string(content), map[string]string{
			"Welcome bonuses":              "Welcome offers this month",
			"First bonus paragraph here.":  "Edited live by someone else.",
			"Second bonus paragraph here.": "Also edited in production.",
		}))
		require.NoError(t, os.WriteFile(env.page, drifted, 0644))
		env.confirm(t, metaPath)

		_, err = env.updater.Update(ctx, metaPath)

		require.NoError(t, err)
		content, err = os.ReadFile(env.page)
		require.NoError(t, err)
		assert.Contains(t, string(content), "First new.</p>")
		assert.Contains(t, string(content), "Second new.</p>")
		assert.NotContains(t, string(content), "Edited live")
	})

	t.Run("fails before reading when backup fails", func(t *testing.T) {
		t.Parallel()

		e := &pipeline.Extractor{
			Backups: &mock.BackupService{
				BackupFn: func(_ context.Context, _ string) (*htmlpatch.Snapshot, error) {
					return nil, errors.New("read-only filesystem")
				},
			},
			Documents: &mock.DocumentStore{
				ReadFn: func(_ context.Context, _ string) ([]byte, error) {
					t.Fatal("document must not be read")
					return nil, nil
				},
			},
		}

		_, _, err := e.Extract(context.Background(), "page.html", "out")

		assert.ErrorContains(t, err, "read-only filesystem")
	})
}

func replaceAll(s string, pairs map[string]string) string {
	for old, repl := range pairs {
		s = strings.ReplaceAll(s, old, repl)
	}
	return s
}
