package audit

import (
	"encoding/json"
	"time"

	"github.com/campushub/campus-events-api/internal/models"
	"gorm.io/gorm"
)

// Recorder appends an entry to the audit trail. Implementations are
// write-only; nothing in the service reads the trail back.
type Recorder interface {
	Record(tx *gorm.DB, action, table string, recordID uint, before, after any, at time.Time) error
}

type dbRecorder struct{}

// NewRecorder returns a Recorder that writes AuditLog rows through the
// transaction handle it is given, so the entry commits or rolls back with
// the guarded write.
func NewRecorder() Recorder {
	return &dbRecorder{}
}

func (r *dbRecorder) Record(tx *gorm.DB, action, table string, recordID uint, before, after any, at time.Time) error {
	entry := models.AuditLog{
		Action:    action,
		TableName: table,
		RecordID:  recordID,
		ChangedAt: at,
	}

	if before != nil {
		data, err := json.Marshal(before)
		if err != nil {
			return err
		}
		entry.OldData = string(data)
	}
	if after != nil {
		data, err := json.Marshal(after)
		if err != nil {
			return err
		}
		entry.NewData = string(data)
	}

	return tx.Create(&entry).Error
}
