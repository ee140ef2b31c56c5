package services

import (
	"context"
	"testing"
	"time"

	"snipr/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	db := setupTestDB()
	logger := testLogger()
	service := NewAuditService(db, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)

	t.Run("Log Action", func(t *testing.T) {
		service.LogAction("TEST_ACTION", "entity_1", map[string]string{"foo": "bar"}, "127.0.0.1")

		var log models.AuditLog
		assert.Eventually(t, func() bool {
			return db.Where("action = ?", "TEST_ACTION").Take(&log).Error == nil
		}, 2*time.Second, 20*time.Millisecond)
		assert.Equal(t, "entity_1", log.EntityID)
		assert.Contains(t, log.Details, "foo")
		assert.Equal(t, "127.0.0.1", log.IPAddress)
	})

	t.Run("Create and delete are audited", func(t *testing.T) {
		shortener := NewShortenerService(db, nil, service, nil)
		url, _, err := shortener.CreateShortURL(ctx, ShortenDTO{LongURL: "audit.example", IPAddress: "4.4.4.4"})
		assert.NoError(t, err)
		assert.NoError(t, shortener.Deactivate(ctx, url.ShortCode, "4.4.4.4"))

		assert.Eventually(t, func() bool {
			var n int64
			db.Model(&models.AuditLog{}).Where("entity_id = ? AND action IN ?", url.ShortCode,
				[]string{ActionCreateLink, ActionDeleteLink}).Count(&n)
			return n == 2
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("Channel Full", func(t *testing.T) {
		service := NewAuditService(db, logger)
		for i := 0; i < cap(service.entries); i++ {
			service.LogAction("ACTION", "ID", nil, "IP")
		}
		// Should drop
		service.LogAction("DROP", "ID", nil, "IP")
		assert.Equal(t, cap(service.entries), len(service.entries))
	})

	t.Run("Nil service", func(t *testing.T) {
		var nilService *AuditService
		nilService.LogAction("NOOP", "ID", nil, "IP")
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB()
		dbErr.Migrator().DropTable(&models.AuditLog{})
		serviceErr := NewAuditService(dbErr, logger)

		ctxErr, cancelErr := context.WithCancel(context.Background())
		go serviceErr.Start(ctxErr)

		serviceErr.LogAction("ERROR", "ID", nil, "IP")
		time.Sleep(100 * time.Millisecond)
		cancelErr()
	})
}

func TestAuditService_DrainsOnShutdown(t *testing.T) {
	db := setupTestDB()
	service := NewAuditService(db, testLogger())

	for i := 0; i < 5; i++ {
		service.LogAction("QUEUED", "entity", nil, "")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service.Start(ctx)

	var n int64
	db.Model(&models.AuditLog{}).Where("action = ?", "QUEUED").Count(&n)
	assert.Equal(t, int64(5), n)
	assert.Empty(t, service.entries)
}
