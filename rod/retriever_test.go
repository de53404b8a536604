package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/notiondocx"
	"github.com/fwojciec/notiondocx/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriever_Retrieve_CanceledContext(t *testing.T) {
	t.Parallel()

	// Given a retriever and an already canceled context
	retriever := rod.NewRetriever()
	defer retriever.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When I retrieve a page
	_, err := retriever.Retrieve(ctx, "https://www.notion.so/page")

	// Then a retrieval error is returned without starting a browser
	require.Error(t, err)
	assert.Equal(t, notiondocx.ERETRIEVAL, notiondocx.ErrorCode(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, retriever.LauncherPID())
}

func TestRetriever_Retrieve_AfterClose(t *testing.T) {
	t.Parallel()

	retriever := rod.NewRetriever()
	require.NoError(t, retriever.Close())

	_, err := retriever.Retrieve(context.Background(), "https://www.notion.so/page")

	require.Error(t, err)
	assert.Equal(t, notiondocx.ERETRIEVAL, notiondocx.ErrorCode(err))
	assert.Contains(t, err.Error(), "retriever is closed")
	assert.Zero(t, retriever.LauncherPID())
}

func TestRetriever_Close(t *testing.T) {
	t.Parallel()

	t.Run("is a no-op when no browser was started", func(t *testing.T) {
		t.Parallel()

		retriever := rod.NewRetriever(rod.WithHeadless(false))

		assert.NoError(t, retriever.Close())
	})

	t.Run("is safe to call multiple times", func(t *testing.T) {
		t.Parallel()

		retriever := rod.NewRetriever()

		assert.NoError(t, retriever.Close())
		assert.NoError(t, retriever.Close())
	})
}
