package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/notiondocx/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Document Output
// The sink writes to a temp file and only replaces the target on commit.

func TestFileSink_WritesToTempFile(t *testing.T) {
	t.Parallel()

	// Given a sink targeting a file
	base := t.TempDir()
	target := filepath.Join(base, "notion_export.docx")
	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	defer sink.Abort()

	// When I write to it
	_, err = sink.Write([]byte("docx bytes"))

	// Then no error occurs
	require.NoError(t, err)

	// And the temp file exists
	_, err = os.Stat(target + ".tmp")
	require.NoError(t, err, "temp file should exist before commit")

	// And the target does not exist yet
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "target should not exist until commit")
}

func TestFileSink_CommitMovesTempToTarget(t *testing.T) {
	t.Parallel()

	// Given a sink with written content
	base := t.TempDir()
	target := filepath.Join(base, "out.docx")
	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	_, err = sink.Write([]byte("new"))
	require.NoError(t, err)

	// When I commit
	err = sink.Commit()

	// Then the target holds the content
	require.NoError(t, err)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	// And the temp file is gone
	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after commit")

	// And further writes fail
	_, err = sink.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestFileSink_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "out.docx")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	_, err = sink.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestFileSink_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing document and a sink with partial output
	base := t.TempDir()
	target := filepath.Join(base, "out.docx")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))
	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	_, err = sink.Write([]byte("partial"))
	require.NoError(t, err)

	// When I abort
	err = sink.Abort()

	// Then the temp file is removed and the existing file is untouched
	require.NoError(t, err)
	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after abort")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))
}

func TestFileSink_AbortAfterCommitIsNoop(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "out.docx")
	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	assert.NoError(t, sink.Abort())
	_, err = os.Stat(target)
	assert.NoError(t, err, "committed file should survive abort")
}

func TestFileSink_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "exports", "2026", "page.docx")

	sink, err := fs.NewFileSink(target)
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	assert.Equal(t, target, sink.Path())
	_, err = os.Stat(target)
	assert.NoError(t, err)
}
