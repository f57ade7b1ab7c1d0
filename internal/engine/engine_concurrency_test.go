package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/campushub/campus-events-api/internal/audit"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Three students race for two seats; exactly one must lose with
// ErrCapacityExceeded. Uses a file-backed database so concurrent goroutines
// share one store.
func TestCreateRegistration_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.College{}, &models.Admin{}, &models.Student{},
		&models.EventType{}, &models.Event{}, &models.Registration{},
		&models.Attendance{}, &models.Feedback{}, &models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	eng := New(db, clock, audit.NewRecorder(), zerolog.Nop())
	ctx := context.Background()

	college, admin, _, eventType := seedCampus(t, db)

	event, err := eng.CreateEvent(ctx, eventParams(college, admin, eventType, clock, 2))
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	students := make([]models.Student, 3)
	for i := range students {
		students[i] = models.Student{
			CollegeID: college.ID,
			Name:      "Racer",
			Email:     fmt.Sprintf("racer%d@college.test", i),
			Status:    "active",
		}
		if err := db.Create(&students[i]).Error; err != nil {
			t.Fatalf("failed to create student: %v", err)
		}
	}

	var wg sync.WaitGroup
	results := make(chan error, len(students))
	for i := range students {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			_, err := eng.CreateRegistration(ctx, studentID, event.ID)
			results <- err
		}(students[i].ID)
	}
	wg.Wait()
	close(results)

	var succeeded, capacityRejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCapacityExceeded):
			capacityRejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 2 {
		t.Errorf("expected 2 successful registrations, got %d", succeeded)
	}
	if capacityRejected != 1 {
		t.Errorf("expected 1 capacity rejection, got %d", capacityRejected)
	}

	var count int64
	db.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", event.ID, models.RegistrationStatusRegistered).
		Count(&count)
	if count != 2 {
		t.Errorf("capacity invariant violated: %d registered rows for capacity 2", count)
	}
}
