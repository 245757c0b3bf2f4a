package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_PagingKeepsLimit(t *testing.T) {
	ts := setupTestServer(t)
	author := ts.user(t, "author")
	for _, content := range []string{"one", "two", "three"} {
		_, err := ts.store.PostMessage(context.Background(), author.ID, content)
		require.NoError(t, err)
	}

	w := ts.do(t, http.MethodGet, "/?page=2&limit=1", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `href="/?page=1&limit=1"`)
	assert.Contains(t, body, `href="/?page=3&limit=1"`)
}
