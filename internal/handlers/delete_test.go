package handlers

import (
	"net/http"
	"testing"

	"snipr/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDeleteURL(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	v := shorten(t, r, "https://delete.example")

	t.Run("Deactivates", func(t *testing.T) {
		w := performRequest(r, "DELETE", "/api/delete/"+v.ShortCode, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "message")

		var row models.URL
		db.Where("short_code = ?", v.ShortCode).Take(&row)
		assert.False(t, row.IsActive)
	})

	t.Run("Repeat is idempotent", func(t *testing.T) {
		w := performRequest(r, "DELETE", "/api/delete/"+v.ShortCode, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown", func(t *testing.T) {
		w := performRequest(r, "DELETE", "/api/delete/NOPE42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Still listed", func(t *testing.T) {
		w := performRequest(r, "GET", "/api/urls", nil)
		assert.Contains(t, w.Body.String(), v.ShortCode)
		assert.Contains(t, w.Body.String(), `"is_active":false`)
	})
}
