package htmlpatch_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/htmlpatch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := htmlpatch.Errorf(htmlpatch.ENOTFOUND, "snapshot %q not found", "a.bak")

	assert.Equal(t, htmlpatch.ENOTFOUND, htmlpatch.ErrorCode(err))
	assert.Equal(t, "snapshot \"a.bak\" not found", htmlpatch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, htmlpatch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, htmlpatch.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("update page.html: %w", htmlpatch.Errorf(htmlpatch.ENOTREADY, "content not yet rewritten"))

	assert.Equal(t, htmlpatch.ENOTREADY, htmlpatch.ErrorCode(err))
	assert.Equal(t, "content not yet rewritten", htmlpatch.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("disk full")

	assert.Equal(t, htmlpatch.EINTERNAL, htmlpatch.ErrorCode(err))
	assert.Equal(t, "Internal error.", htmlpatch.ErrorMessage(err))
}
