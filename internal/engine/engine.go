package engine

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/campus-events-api/internal/audit"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Engine gates every mutation of events, registrations, attendance and
// feedback. All checks and the guarded write happen inside one gorm
// transaction; the engine itself holds no entity state between calls.
type Engine struct {
	db    *gorm.DB
	clock Clock
	audit audit.Recorder
	log   zerolog.Logger
	locks *eventLocks
}

func New(db *gorm.DB, clock Clock, recorder audit.Recorder, log zerolog.Logger) *Engine {
	return &Engine{
		db:    db,
		clock: clock,
		audit: recorder,
		log:   log,
		locks: newEventLocks(),
	}
}

type CreateEventParams struct {
	CollegeID   uint
	AdminID     uint
	Title       string
	Description string
	TypeID      uint
	Venue       string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	Semester    string
}

// CreateEvent validates the time range, capacity and college scoping, then
// creates the event as active and records the insert in the audit trail.
func (e *Engine) CreateEvent(ctx context.Context, params CreateEventParams) (*models.Event, error) {
	if !params.EndTime.After(params.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if params.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	var event models.Event
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.First(&admin, params.AdminID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return err
		}
		if admin.CollegeID != params.CollegeID {
			return ErrAdminCollegeMismatch
		}

		event = models.Event{
			CollegeID:   params.CollegeID,
			Title:       params.Title,
			Description: params.Description,
			TypeID:      params.TypeID,
			Venue:       params.Venue,
			StartTime:   params.StartTime,
			EndTime:     params.EndTime,
			Capacity:    params.Capacity,
			CreatedByID: params.AdminID,
			Semester:    params.Semester,
			Status:      models.EventStatusActive,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "insert", "events", event.ID, nil, event, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("event_id", event.ID).Uint("college_id", event.CollegeID).Msg("event created")
	return &event, nil
}

// UpdateEventCapacity changes an event's capacity. It never shrinks below the
// number of currently registered students; the count and the update are
// serialized against concurrent registrations for the same event.
func (e *Engine) UpdateEventCapacity(ctx context.Context, eventID uint, newCapacity int) (*models.Event, error) {
	if newCapacity < 0 {
		return nil, ErrInvalidCapacity
	}

	unlock := e.locks.lock(eventID)
	defer unlock()

	var event models.Event
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if err := e.completeIfEnded(tx, &event); err != nil {
			return err
		}

		count, err := e.countRegistered(tx, eventID)
		if err != nil {
			return err
		}
		if int64(newCapacity) < count {
			return ErrCapacityBelowExisting
		}

		before := event
		event.Capacity = newCapacity
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "update", "events", event.ID, before, event, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("event_id", event.ID).Int("capacity", newCapacity).Msg("event capacity updated")
	return &event, nil
}

// CancelEvent transitions an active event to cancelled. Cancelled and
// completed are terminal.
func (e *Engine) CancelEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	var event models.Event
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if err := e.completeIfEnded(tx, &event); err != nil {
			return err
		}
		if event.Status != models.EventStatusActive {
			return ErrEventClosed
		}

		before := event
		event.Status = models.EventStatusCancelled
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "update", "events", event.ID, before, event, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("event_id", event.ID).Msg("event cancelled")
	return &event, nil
}

// GetEvent loads an event. Reading counts as a touch, so an active event that
// is past its end time comes back completed.
func (e *Engine) GetEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	var event models.Event
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		return e.completeIfEnded(tx, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns events, optionally scoped to one college, touching each
// one on the way out. A periodic listing is what keeps lazy completion moving.
func (e *Engine) ListEvents(ctx context.Context, collegeID uint) ([]models.Event, error) {
	var events []models.Event
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Order("start_time asc")
		if collegeID != 0 {
			q = q.Where("college_id = ?", collegeID)
		}
		if err := q.Find(&events).Error; err != nil {
			return err
		}
		for i := range events {
			if err := e.completeIfEnded(tx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventRegistrations returns all registrations for an event, newest first.
func (e *Engine) ListEventRegistrations(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if err := e.completeIfEnded(tx, &event); err != nil {
			return err
		}
		return tx.Where("event_id = ?", eventID).
			Order("registration_time desc").
			Find(&regs).Error
	})
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// CreateRegistration registers a student for an event. Checks run in a fixed
// order and the first failure wins: closed event, closed window, cross-college,
// duplicate, capacity. The capacity check and the insert are serialized per
// event so two concurrent registrations cannot both take the last seat.
func (e *Engine) CreateRegistration(ctx context.Context, studentID, eventID uint) (*models.Registration, error) {
	unlock := e.locks.lock(eventID)
	defer unlock()

	var reg models.Registration
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		if err := e.completeIfEnded(tx, &event); err != nil {
			return err
		}

		if event.Status != models.EventStatusActive {
			return ErrEventClosed
		}
		// The auto-complete pass above flips an ended active event to
		// completed, so a past end_time normally surfaces as ErrEventClosed.
		// This guard stays as the window check of record for any row that is
		// somehow still active past its end.
		if e.clock.Now().After(event.EndTime) {
			return ErrRegistrationWindowClosed
		}

		var student models.Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}
		if student.CollegeID != event.CollegeID {
			return ErrCrossCollegeRegistration
		}

		// Cancelled registrations still count: the (student, event) pair is
		// consumed for good, no re-registering after cancellation.
		var existing int64
		if err := tx.Model(&models.Registration{}).
			Where("student_id = ? AND event_id = ?", studentID, eventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateRegistration
		}

		count, err := e.countRegistered(tx, eventID)
		if err != nil {
			return err
		}
		if count >= int64(event.Capacity) {
			return ErrCapacityExceeded
		}

		reg = models.Registration{
			StudentID:        studentID,
			EventID:          eventID,
			RegistrationTime: e.clock.Now(),
			Status:           models.RegistrationStatusRegistered,
		}
		if err := tx.Create(&reg).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "insert", "registrations", reg.ID, nil, reg, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("registration_id", reg.ID).Uint("event_id", eventID).Uint("student_id", studentID).Msg("registration created")
	return &reg, nil
}

// CancelRegistration marks a registration cancelled. Irreversible; existing
// attendance and feedback rows are kept for the audit trail. Cancelling twice
// fails with ErrRegistrationAlreadyCancelled.
func (e *Engine) CancelRegistration(ctx context.Context, registrationID uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg models.Registration
		if err := tx.First(&reg, registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		if reg.Status == models.RegistrationStatusCancelled {
			return ErrRegistrationAlreadyCancelled
		}

		before := reg
		reg.Status = models.RegistrationStatusCancelled
		if err := tx.Save(&reg).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "update", "registrations", reg.ID, before, reg, e.clock.Now())
	})
	if err != nil {
		return err
	}

	e.log.Info().Uint("registration_id", registrationID).Msg("registration cancelled")
	return nil
}

// MarkAttendance records whether the student showed up. One attendance row
// per registration, created once and never updated. Event timing is not
// checked here; that policy belongs to the caller.
func (e *Engine) MarkAttendance(ctx context.Context, registrationID uint, attended bool, checkInTime *time.Time) (*models.Attendance, error) {
	var att models.Attendance
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg models.Registration
		if err := tx.First(&reg, registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Attendance{}).
			Where("registration_id = ?", registrationID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateAttendance
		}

		att = models.Attendance{
			RegistrationID: registrationID,
			Attended:       attended,
			CheckInTime:    checkInTime,
		}
		if err := tx.Create(&att).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "insert", "attendances", att.ID, nil, att, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("registration_id", registrationID).Bool("attended", attended).Msg("attendance marked")
	return &att, nil
}

// SubmitFeedback stores a rating for an attended, completed event. One
// feedback row per registration.
func (e *Engine) SubmitFeedback(ctx context.Context, registrationID uint, rating int, comments string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var fb models.Feedback
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg models.Registration
		if err := tx.First(&reg, registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		var attendedCount int64
		if err := tx.Model(&models.Attendance{}).
			Where("registration_id = ? AND attended = ?", registrationID, true).
			Count(&attendedCount).Error; err != nil {
			return err
		}
		if attendedCount == 0 {
			return ErrFeedbackRequiresAttendance
		}

		var event models.Event
		if err := tx.First(&event, reg.EventID).Error; err != nil {
			return err
		}
		if err := e.completeIfEnded(tx, &event); err != nil {
			return err
		}
		if event.Status != models.EventStatusCompleted {
			return ErrEventNotCompleted
		}

		var existing int64
		if err := tx.Model(&models.Feedback{}).
			Where("registration_id = ?", registrationID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateFeedback
		}

		fb = models.Feedback{
			RegistrationID: registrationID,
			Rating:         rating,
			Comments:       comments,
			SubmittedAt:    e.clock.Now(),
		}
		if err := tx.Create(&fb).Error; err != nil {
			return err
		}

		return e.audit.Record(tx, "insert", "feedbacks", fb.ID, nil, fb, e.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().Uint("registration_id", registrationID).Int("rating", rating).Msg("feedback submitted")
	return &fb, nil
}

// completeIfEnded is the auto-complete touch: an active event past its end
// time transitions to completed before any other rule is evaluated against
// it. Runs inside the caller's transaction.
func (e *Engine) completeIfEnded(tx *gorm.DB, event *models.Event) error {
	if event.Status != models.EventStatusActive || !e.clock.Now().After(event.EndTime) {
		return nil
	}

	before := *event
	event.Status = models.EventStatusCompleted
	if err := tx.Save(event).Error; err != nil {
		return err
	}

	e.log.Debug().Uint("event_id", event.ID).Msg("event auto-completed")
	return e.audit.Record(tx, "auto_complete", "events", event.ID, before, *event, e.clock.Now())
}

func (e *Engine) countRegistered(tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", eventID, models.RegistrationStatusRegistered).
		Count(&count).Error
	return count, err
}
