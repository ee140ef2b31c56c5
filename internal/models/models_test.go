package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestModels(t *testing.T) {
	t.Run("TableNames", func(t *testing.T) {
		assert.Equal(t, "urls", URL{}.TableName())
		assert.Equal(t, "clicks", Click{}.TableName())
		assert.Equal(t, "audit_logs", AuditLog{}.TableName())
	})

	t.Run("View never clicked", func(t *testing.T) {
		u := URL{
			ID:          7,
			OriginalURL: "http://example.com",
			ShortCode:   "aB3xY9",
			CreatedAt:   time.Date(2024, 3, 9, 14, 5, 7, 999, time.UTC),
			IsActive:    true,
		}
		v := u.View()
		assert.Equal(t, "2024-03-09 14:05:07", v.CreatedAt)
		assert.Nil(t, v.LastClicked)

		data, err := json.Marshal(v)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"original_url":"http://example.com","short_code":"aB3xY9","clicks":0,
			"created_at":"2024-03-09 14:05:07","last_clicked":null,"is_active":true}`, string(data))
	})

	t.Run("View clicked converts to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		clicked := time.Date(2024, 3, 10, 2, 0, 0, 0, loc)
		u := URL{CreatedAt: clicked, LastClicked: &clicked}
		v := u.View()
		if assert.NotNil(t, v.LastClicked) {
			assert.Equal(t, "2024-03-10 00:00:00", *v.LastClicked)
		}
	})
}
