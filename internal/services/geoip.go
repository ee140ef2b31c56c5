package services

import (
	"context"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/geoip2-golang"
)

// geoReader is the subset of *geoip2.Reader the service uses.
type geoReader interface {
	Country(ip net.IP) (*geoip2.Country, error)
	Close() error
}

// GeoIPService resolves click addresses to country names from a local
// MaxMind database. Without a database every lookup returns "Unknown".
type GeoIPService struct {
	dbPath    string
	logger    *slog.Logger
	geoReader geoReader
	loadedAt  time.Time
	geoLock   sync.RWMutex
}

func NewGeoIPService(dbPath string, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{
		dbPath: dbPath,
		logger: logger,
	}
}

func (s *GeoIPService) Init() {
	if s.dbPath == "" {
		s.logger.Info("GeoIP: no database configured, country lookups disabled")
		return
	}
	s.reloadReader(s.dbPath)
}

// StartReloader re-opens the database whenever the file on disk changes, so
// an external geoipupdate run is picked up without a restart.
func (s *GeoIPService) StartReloader(ctx context.Context, interval time.Duration) {
	if s.dbPath == "" {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			info, err := os.Stat(s.dbPath)
			if err != nil {
				continue
			}
			s.geoLock.RLock()
			stale := info.ModTime().After(s.loadedAt)
			s.geoLock.RUnlock()
			if stale {
				s.logger.Info("GeoIP: database changed, reloading", "path", s.dbPath)
				s.reloadReader(s.dbPath)
			}
		case <-ctx.Done():
			s.logger.Info("GeoIP: reloader stopping")
			return
		}
	}
}

func (s *GeoIPService) reloadReader(path string) {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()

	if s.geoReader != nil {
		s.geoReader.Close()
		s.geoReader = nil
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		s.logger.Error("GeoIP: Failed to open database", "path", path, "error", err)
		return
	}
	s.geoReader = reader
	s.loadedAt = time.Now()

	s.logger.Info("GeoIP: Loaded database", "epoch", reader.Metadata().BuildEpoch)
}

func (s *GeoIPService) Close() {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()
	if s.geoReader != nil {
		s.geoReader.Close()
		s.geoReader = nil
	}
}

// GetLocation returns the English country name for ipStr, falling back to
// the ISO code.
func (s *GeoIPService) GetLocation(ipStr string) (country, isoCode string, ok bool) {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost", "", true
	}

	ip := net.ParseIP(ipStr)

	// The read lock is held through the lookup so a reload cannot close
	// the reader underneath it.
	s.geoLock.RLock()
	defer s.geoLock.RUnlock()

	if s.geoReader == nil || ip == nil {
		return "Unknown", "", false
	}

	record, err := s.geoReader.Country(ip)
	if err != nil {
		s.logger.Debug("GeoIP: Lookup error", "ip", ipStr, "error", err)
		return "Unknown", "", false
	}

	isoCode = record.Country.IsoCode
	if name, ok := record.Country.Names["en"]; ok {
		country = name
	} else {
		country = isoCode
	}

	if country == "" {
		return "Unknown", "", false
	}
	return country, isoCode, true
}
