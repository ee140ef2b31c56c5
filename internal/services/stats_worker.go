package services

import (
	"context"
	"errors"
	"log/slog"

	"snipr/internal/models"
	"snipr/pkg/utils"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

const recentClicksLimit = 20

type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

type Breakdown struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// URLStats is the read-only view behind the stats endpoints.
type URLStats struct {
	URL          models.URL
	DailyClicks  []DailyClicks
	Browsers     []Breakdown
	OS           []Breakdown
	Devices      []Breakdown
	Countries    []Breakdown
	Referrers    []Breakdown
	RecentClicks []models.Click
}

type StatsService struct {
	db           *gorm.DB
	logger       *slog.Logger
	clickChannel chan models.Click
	geoIPService *GeoIPService
	maskIPs      bool
}

func NewStatsService(db *gorm.DB, logger *slog.Logger, geoIPService *GeoIPService, maskIPs bool) *StatsService {
	return &StatsService{
		db:           db,
		logger:       logger,
		clickChannel: make(chan models.Click, 1000),
		geoIPService: geoIPService,
		maskIPs:      maskIPs,
	}
}

func (s *StatsService) Start(ctx context.Context) {
	s.logger.Info("Stats worker starting")
	for {
		select {
		case click := <-s.clickChannel:
			s.saveClick(click)
		case <-ctx.Done():
			s.drain()
			s.logger.Info("Stats worker stopping")
			return
		}
	}
}

// drain writes whatever was queued before shutdown.
func (s *StatsService) drain() {
	for {
		select {
		case click := <-s.clickChannel:
			s.saveClick(click)
		default:
			return
		}
	}
}

func (s *StatsService) saveClick(click models.Click) {
	s.enrichClickData(&click)
	if err := s.db.Create(&click).Error; err != nil {
		s.logger.Error("Failed to record click stats", "url_id", click.URLID, "error", err)
	}
}

// RecordClickAsync queues a click event. A full queue drops the event.
func (s *StatsService) RecordClickAsync(click models.Click) {
	select {
	case s.clickChannel <- click:
	default:
		s.logger.Warn("Stats channel full, dropping click event", "url_id", click.URLID)
	}
}

func (s *StatsService) enrichClickData(click *models.Click) {
	ua := user_agent.New(click.UserAgent)
	browserName, browserVer := ua.Browser()
	switch {
	case browserName == "":
		click.Browser = "Unknown"
	case browserVer == "":
		click.Browser = browserName
	default:
		click.Browser = browserName + " " + browserVer
	}
	click.OS = ua.OS()
	if click.OS == "" {
		click.OS = "Unknown"
	}

	if ua.Bot() {
		click.DeviceType = "Bot"
	} else if ua.Mobile() {
		click.DeviceType = "Mobile"
	} else {
		click.DeviceType = "Desktop"
	}

	if s.geoIPService != nil {
		click.Country, _, _ = s.geoIPService.GetLocation(click.IPAddress)
	}
	if click.Country == "" {
		click.Country = "Unknown"
	}

	if s.maskIPs {
		click.IPAddress = s.maskIP(click.IPAddress)
	}
}

func (s *StatsService) maskIP(ip string) string {
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == '.' {
			return ip[:i] + ".0"
		}
		if ip[i] == ':' {
			return "IPv6 (Masked)"
		}
	}
	return ip
}

// GetStats aggregates the click history of an active short code.
func (s *StatsService) GetStats(ctx context.Context, code string) (*URLStats, error) {
	if !utils.IsShortCode(code) {
		return nil, ErrNotFound
	}
	db := s.db.WithContext(ctx)

	var stats URLStats
	err := db.Where("short_code = ? AND is_active = ?", code, true).Take(&stats.URL).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("load stats", err)
	}

	clicks := func() *gorm.DB {
		return db.Model(&models.Click{}).Where("url_id = ?", stats.URL.ID)
	}

	day := s.dayExpr()
	stats.DailyClicks = []DailyClicks{}
	if err := clicks().Select(day + " AS date, count(*) AS clicks").
		Group(day).Order(day).
		Scan(&stats.DailyClicks).Error; err != nil {
		return nil, storageError("daily clicks", err)
	}

	breakdowns := []struct {
		column string
		dst    *[]Breakdown
	}{
		{"browser", &stats.Browsers},
		{"os", &stats.OS},
		{"device_type", &stats.Devices},
		{"country", &stats.Countries},
		{"referrer", &stats.Referrers},
	}
	for _, b := range breakdowns {
		*b.dst = []Breakdown{}
		if err := clicks().Select(b.column + " AS label, count(*) AS count").
			Group(b.column).Order("count desc").Order(b.column).
			Scan(b.dst).Error; err != nil {
			return nil, storageError("click breakdown", err)
		}
	}
	for i := range stats.Referrers {
		if stats.Referrers[i].Label == "" {
			stats.Referrers[i].Label = "Direct"
		}
	}

	stats.RecentClicks = []models.Click{}
	if err := clicks().Order("clicked_at desc").Order("id desc").
		Limit(recentClicksLimit).
		Find(&stats.RecentClicks).Error; err != nil {
		return nil, storageError("recent clicks", err)
	}

	return &stats, nil
}

// dayExpr renders clicked_at as a YYYY-MM-DD string in the active dialect.
// SQLite keeps timestamps as UTC text, so the date is its first ten bytes.
func (s *StatsService) dayExpr() string {
	if s.db.Dialector.Name() == "postgres" {
		return "to_char(clicked_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "substr(clicked_at, 1, 10)"
}
