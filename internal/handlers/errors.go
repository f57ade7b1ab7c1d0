package handlers

import (
	"errors"

	"github.com/campushub/campus-events-api/internal/engine"
	"github.com/danielgtaylor/huma/v2"
)

// mapEngineError translates the engine's named rejections into HTTP errors.
// Every rule violation is a 4xx; anything unrecognized is a storage fault.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidTimeRange),
		errors.Is(err, engine.ErrInvalidCapacity),
		errors.Is(err, engine.ErrInvalidRating):
		return huma.Error400BadRequest(err.Error())

	case errors.Is(err, engine.ErrAdminCollegeMismatch),
		errors.Is(err, engine.ErrCrossCollegeRegistration):
		return huma.Error403Forbidden(err.Error())

	case errors.Is(err, engine.ErrEventNotFound),
		errors.Is(err, engine.ErrStudentNotFound),
		errors.Is(err, engine.ErrAdminNotFound),
		errors.Is(err, engine.ErrRegistrationNotFound):
		return huma.Error404NotFound(err.Error())

	case errors.Is(err, engine.ErrEventClosed),
		errors.Is(err, engine.ErrRegistrationWindowClosed),
		errors.Is(err, engine.ErrDuplicateRegistration),
		errors.Is(err, engine.ErrCapacityExceeded),
		errors.Is(err, engine.ErrCapacityBelowExisting),
		errors.Is(err, engine.ErrDuplicateAttendance),
		errors.Is(err, engine.ErrFeedbackRequiresAttendance),
		errors.Is(err, engine.ErrEventNotCompleted),
		errors.Is(err, engine.ErrDuplicateFeedback),
		errors.Is(err, engine.ErrRegistrationAlreadyCancelled):
		return huma.Error409Conflict(err.Error())

	default:
		return huma.Error500InternalServerError("Unexpected storage error: " + err.Error())
	}
}
