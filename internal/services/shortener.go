package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"snipr/internal/models"
	"snipr/pkg/utils"

	"gorm.io/gorm"
)

const (
	DefaultCodeLength   = 6
	MaxCodeLength       = 10
	DefaultCodeAttempts = 5
	DefaultPageSize     = 10

	// insertAttempts bounds how often a create is replayed after losing a
	// unique-index race on short_code.
	insertAttempts = 3
)

type ShortenDTO struct {
	LongURL   string
	IPAddress string // creator, kept for audit only
}

// Visit describes the requester of a redirect.
type Visit struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// ClickRecorder receives click events after a redirect has been committed.
// Implementations must not block.
type ClickRecorder interface {
	RecordClickAsync(click models.Click)
}

type URLPage struct {
	Items      []models.URL
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

func (p URLPage) HasPrev() bool { return p.Page > 1 }
func (p URLPage) HasNext() bool { return p.Page < p.TotalPages }
func (p URLPage) PrevPage() int { return p.Page - 1 }
func (p URLPage) NextPage() int { return p.Page + 1 }

type ShortenerService struct {
	db            *gorm.DB
	cache         *URLCache
	auditService  *AuditService
	clicks        ClickRecorder
	codeGenerator func(int) string
	codeLength    int
	codeAttempts  int
	now           func() time.Time
}

func NewShortenerService(db *gorm.DB, cache *URLCache, auditService *AuditService, clicks ClickRecorder) *ShortenerService {
	return &ShortenerService{
		db:            db,
		cache:         cache,
		auditService:  auditService,
		clicks:        clicks,
		codeGenerator: utils.GenerateShortCode,
		codeLength:    DefaultCodeLength,
		codeAttempts:  DefaultCodeAttempts,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetCodePolicy overrides the starting code length and the number of
// candidates tried per length. Non-positive values keep the defaults.
func (s *ShortenerService) SetCodePolicy(length, attempts int) {
	if length > 0 && length <= MaxCodeLength {
		s.codeLength = length
	}
	if attempts > 0 {
		s.codeAttempts = attempts
	}
}

// CreateShortURL returns the active link for dto.LongURL, minting a new code
// only when none exists. created reports whether a row was inserted.
func (s *ShortenerService) CreateShortURL(ctx context.Context, dto ShortenDTO) (*models.URL, bool, error) {
	longURL := utils.NormalizeURL(dto.LongURL)
	if utf8.RuneCountInString(longURL) > utils.MaxURLLength || !utils.IsValidURL(longURL) {
		return nil, false, ErrInvalidInput
	}

	var (
		result  models.URL
		created bool
		err     error
	)
	for attempt := 0; attempt < insertAttempts; attempt++ {
		result, created, err = s.createOrGet(ctx, longURL, dto.IPAddress)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrStorage) {
			return nil, false, err
		}
		return nil, false, storageError("create short url", err)
	}

	if created {
		s.auditService.LogAction(ActionCreateLink, result.ShortCode, map[string]interface{}{
			"original_url": result.OriginalURL,
		}, dto.IPAddress)
	}

	return &result, created, nil
}

func (s *ShortenerService) createOrGet(ctx context.Context, longURL, ip string) (models.URL, bool, error) {
	var (
		result  models.URL
		created bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("original_url = ? AND is_active = ?", longURL, true).
			Order("id").
			Take(&result).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		code, err := s.uniqueCode(tx)
		if err != nil {
			return err
		}

		result = models.URL{
			OriginalURL: longURL,
			ShortCode:   code,
			Clicks:      0,
			CreatedAt:   s.now(),
			IsActive:    true,
			IPAddress:   ip,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return result, created, err
}

// uniqueCode draws candidates until one is unused by any row, active or not.
// Every codeAttempts collisions widen the code by one symbol.
func (s *ShortenerService) uniqueCode(tx *gorm.DB) (string, error) {
	for length := s.codeLength; length <= MaxCodeLength; length++ {
		for i := 0; i < s.codeAttempts; i++ {
			code := s.codeGenerator(length)
			if utils.IsReservedCode(code) {
				continue
			}
			var count int64
			if err := tx.Model(&models.URL{}).Where("short_code = ?", code).Count(&count).Error; err != nil {
				return "", err
			}
			if count == 0 {
				return code, nil
			}
		}
	}
	return "", ErrCodeSpaceExhausted
}

// Resolve counts a visit to an active short code and returns its original
// URL. The click event is handed off only after the counter commits.
func (s *ShortenerService) Resolve(ctx context.Context, code string, visit Visit) (string, error) {
	if !utils.IsShortCode(code) {
		return "", ErrNotFound
	}

	target, hit := s.cache.Get(ctx, code)
	now := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !hit {
			var row models.URL
			if err := tx.Select("id", "original_url").
				Where("short_code = ? AND is_active = ?", code, true).
				Take(&row).Error; err != nil {
				return err
			}
			target = CachedURL{ID: row.ID, OriginalURL: row.OriginalURL}
		}

		res := tx.Model(&models.URL{}).
			Where("id = ? AND is_active = ?", target.ID, true).
			Updates(map[string]interface{}{
				"clicks":       gorm.Expr("clicks + ?", 1),
				"last_clicked": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if hit {
				s.cache.Delete(ctx, code)
			}
			return "", ErrNotFound
		}
		return "", storageError("record click", err)
	}

	if !hit {
		s.cache.Set(ctx, code, target)
	}

	if s.clicks != nil {
		s.clicks.RecordClickAsync(models.Click{
			URLID:     target.ID,
			ClickedAt: now,
			IPAddress: visit.IPAddress,
			UserAgent: visit.UserAgent,
			Referrer:  visit.Referrer,
		})
	}

	return target.OriginalURL, nil
}

// Lookup returns the active record for code without counting a visit.
func (s *ShortenerService) Lookup(ctx context.Context, code string) (*models.URL, error) {
	if !utils.IsShortCode(code) {
		return nil, ErrNotFound
	}
	var result models.URL
	err := s.db.WithContext(ctx).Where("short_code = ? AND is_active = ?", code, true).Take(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("lookup short url", err)
	}
	return &result, nil
}

// Deactivate soft-deletes code. Repeating it on an inactive link succeeds.
func (s *ShortenerService) Deactivate(ctx context.Context, code string, ip string) error {
	if !utils.IsShortCode(code) {
		return ErrNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.URL
		if err := tx.Where("short_code = ?", code).Take(&existing).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Update("is_active", false).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageError("deactivate short url", err)
	}

	s.cache.Delete(ctx, code)
	s.auditService.LogAction(ActionDeleteLink, code, nil, ip)
	return nil
}

// ListURLs pages through every link, newest first, inactive ones included.
func (s *ShortenerService) ListURLs(ctx context.Context, page, pageSize int) (URLPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	out := URLPage{Page: page, PageSize: pageSize, Items: []models.URL{}}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.URL{}).Count(&out.Total).Error; err != nil {
		return URLPage{}, storageError("count urls", err)
	}
	out.TotalPages = int((out.Total + int64(pageSize) - 1) / int64(pageSize))

	err := db.Order("created_at desc").Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out.Items).Error
	if err != nil {
		return URLPage{}, storageError("list urls", err)
	}
	return out, nil
}
