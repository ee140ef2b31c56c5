package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:50;not null" json:"action"` // CREATE_LINK, DELETE_LINK
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // short code
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// All lists every model AutoMigrate should know about.
func All() []interface{} {
	return []interface{}{&URL{}, &Click{}, &AuditLog{}}
}
