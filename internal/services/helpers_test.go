package services

import (
	"log/slog"
	"os"
	"sync"

	"snipr/internal/config"
	"snipr/internal/models"
	"snipr/internal/repository"

	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := repository.InitDB(config.Config{DatabaseURL: "sqlite://:memory:"})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// clickSink collects click events synchronously.
type clickSink struct {
	mu     sync.Mutex
	clicks []models.Click
}

func (c *clickSink) RecordClickAsync(click models.Click) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clicks = append(c.clicks, click)
}

func (c *clickSink) all() []models.Click {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Click(nil), c.clicks...)
}

func reload(db *gorm.DB, code string) models.URL {
	var u models.URL
	db.Where("short_code = ?", code).Take(&u)
	return u
}
