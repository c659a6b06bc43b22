package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imgstore/core/response"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/uploads/avatars/pic.png", nil)

	err := response.Redirect("https://cdn.example.com/avatars/pic.png")(rec, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/avatars/pic.png", rec.Header().Get("Location"))
}
