package htmlpatch_test

import (
	"testing"

	"github.com/fwojciec/htmlpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid batch", func(t *testing.T) {
		t.Parallel()

		b := &htmlpatch.Batch{SourceFolder: "/site", OutputDir: "/site/.htmlpatch-meta"}

		assert.NoError(t, b.Validate())
	})

	t.Run("requires source folder", func(t *testing.T) {
		t.Parallel()

		b := &htmlpatch.Batch{OutputDir: "/out"}

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, htmlpatch.EINVALID, htmlpatch.ErrorCode(err))
	})

	t.Run("requires output dir", func(t *testing.T) {
		t.Parallel()

		b := &htmlpatch.Batch{SourceFolder: "/site"}

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, htmlpatch.EINVALID, htmlpatch.ErrorCode(err))
	})
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()

	files := []*htmlpatch.BatchFile{
		{Status: htmlpatch.FilePending},
		{Status: htmlpatch.FileParsed},
		{Status: htmlpatch.FileParsed},
		{Status: htmlpatch.FileFailed},
	}

	counts := htmlpatch.CountByStatus(files)

	assert.Equal(t, 1, counts[htmlpatch.FilePending])
	assert.Equal(t, 2, counts[htmlpatch.FileParsed])
	assert.Equal(t, 1, counts[htmlpatch.FileFailed])
	assert.Equal(t, 0, counts[htmlpatch.FileUpdated])
}
