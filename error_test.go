package notiondocx_test

import (
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/notiondocx"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := notiondocx.Errorf(notiondocx.ENOTFOUND, "content root %q not found", "div.notion-page-content")

	assert.Equal(t, notiondocx.ENOTFOUND, notiondocx.ErrorCode(err))
	assert.Equal(t, "content root \"div.notion-page-content\" not found", notiondocx.ErrorMessage(err))
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	err := notiondocx.Wrapf(notiondocx.ESERIALIZE, io.ErrShortWrite, "writing document")

	assert.Equal(t, notiondocx.ESERIALIZE, notiondocx.ErrorCode(err))
	assert.Equal(t, "writing document: short write", notiondocx.ErrorMessage(err))
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestWrapf_NilCause(t *testing.T) {
	t.Parallel()

	err := notiondocx.Wrapf(notiondocx.ERETRIEVAL, nil, "page load failed")

	assert.Equal(t, "page load failed", notiondocx.ErrorMessage(err))
	assert.NoError(t, err.Unwrap())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, notiondocx.ErrorCode(nil))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, notiondocx.EINTERNAL, notiondocx.ErrorCode(err))
	assert.Equal(t, "Internal error.", notiondocx.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, notiondocx.ErrorMessage(nil))
}
