package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/campushub/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRecorder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.AuditLog{})

	recorder := NewRecorder()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	type snapshot struct {
		Capacity int `json:"capacity"`
	}

	err = recorder.Record(db, "update", "events", 7, snapshot{Capacity: 10}, snapshot{Capacity: 5}, at)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("failed to load audit entry: %v", err)
	}

	if entry.Action != "update" || entry.TableName != "events" || entry.RecordID != 7 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if !strings.Contains(entry.OldData, "10") || !strings.Contains(entry.NewData, "5") {
		t.Errorf("expected before/after images, got %q -> %q", entry.OldData, entry.NewData)
	}
	if !entry.ChangedAt.Equal(at) {
		t.Errorf("expected changed_at %v, got %v", at, entry.ChangedAt)
	}

	t.Run("InsertHasNoBeforeImage", func(t *testing.T) {
		if err := recorder.Record(db, "insert", "registrations", 3, nil, snapshot{Capacity: 1}, at); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}

		var inserted models.AuditLog
		if err := db.Where("table_name = ?", "registrations").First(&inserted).Error; err != nil {
			t.Fatalf("failed to load audit entry: %v", err)
		}
		if inserted.OldData != "" {
			t.Errorf("expected empty before-image, got %q", inserted.OldData)
		}
	})
}
