package engine

import "errors"

// Rule violations. Each guarded operation returns exactly one of these when
// a business invariant would be broken; they are semantic rejections, never
// retried. Anything else coming out of the engine is a storage fault.
var (
	ErrInvalidTimeRange      = errors.New("event end time must be after start time")
	ErrInvalidCapacity       = errors.New("event capacity must not be negative")
	ErrAdminCollegeMismatch  = errors.New("admin may only create events for their own college")
	ErrCapacityBelowExisting = errors.New("new capacity is below the number of active registrations")

	ErrEventClosed              = errors.New("event is cancelled or completed")
	ErrRegistrationWindowClosed = errors.New("registration window has closed")
	ErrCrossCollegeRegistration = errors.New("student and event belong to different colleges")
	ErrDuplicateRegistration    = errors.New("student is already registered for this event")
	ErrCapacityExceeded         = errors.New("event is at full capacity")

	ErrDuplicateAttendance = errors.New("attendance already marked for this registration")

	ErrInvalidRating              = errors.New("feedback rating must be between 1 and 5")
	ErrFeedbackRequiresAttendance = errors.New("feedback can only be submitted by attendees")
	ErrEventNotCompleted          = errors.New("feedback requires a completed event")
	ErrDuplicateFeedback          = errors.New("feedback already exists for this registration")

	ErrRegistrationAlreadyCancelled = errors.New("registration is already cancelled")
)

// Lookup failures.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)
