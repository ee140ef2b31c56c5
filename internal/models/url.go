package models

import (
	"time"
)

// TimeLayout is the wire format for timestamps in API responses.
const TimeLayout = "2006-01-02 15:04:05"

type URL struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OriginalURL string     `gorm:"size:500;not null;index" json:"original_url"`
	ShortCode   string     `gorm:"uniqueIndex;not null;size:10" json:"short_code"`
	Clicks      int        `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	LastClicked *time.Time `json:"last_clicked"`
	IsActive    bool       `gorm:"not null;default:true;index" json:"is_active"`
	IPAddress   string     `gorm:"size:45" json:"-"`

	ClickEvents []Click `gorm:"foreignKey:URLID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (URL) TableName() string {
	return "urls"
}

// URLView is the JSON projection of a URL row.
type URLView struct {
	ID          uint    `json:"id"`
	OriginalURL string  `json:"original_url"`
	ShortCode   string  `json:"short_code"`
	Clicks      int     `json:"clicks"`
	CreatedAt   string  `json:"created_at"`
	LastClicked *string `json:"last_clicked"`
	IsActive    bool    `json:"is_active"`
}

func (u URL) View() URLView {
	v := URLView{
		ID:          u.ID,
		OriginalURL: u.OriginalURL,
		ShortCode:   u.ShortCode,
		Clicks:      u.Clicks,
		CreatedAt:   u.CreatedAt.UTC().Format(TimeLayout),
		IsActive:    u.IsActive,
	}
	if u.LastClicked != nil {
		s := u.LastClicked.UTC().Format(TimeLayout)
		v.LastClicked = &s
	}
	return v
}
