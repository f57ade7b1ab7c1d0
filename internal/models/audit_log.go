package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog is an append-only trail of guarded writes. OldData/NewData hold
// JSON images of the record before and after the change.
type AuditLog struct {
	gorm.Model
	Action    string    `json:"action" gorm:"not null"`
	TableName string    `json:"table_name" gorm:"not null"`
	RecordID  uint      `json:"record_id"`
	OldData   string    `json:"old_data"`
	NewData   string    `json:"new_data"`
	ChangedAt time.Time `json:"changed_at" gorm:"not null"`
}
