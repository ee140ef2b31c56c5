package models

import (
	"time"
)

// Click is one followed redirect. Rows are only ever inserted.
type Click struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	URLID      uint      `gorm:"not null;index" json:"url_id"`
	ClickedAt  time.Time `gorm:"not null;index" json:"clicked_at"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	Referrer   string    `gorm:"size:500" json:"referrer"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	Country    string    `gorm:"size:100" json:"country"`
}

func (Click) TableName() string {
	return "clicks"
}
