package handlers

import (
	"context"
	"time"

	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/campushub/campus-events-api/internal/engine"
)

type AttendanceHandler struct {
	engine      *engine.Engine
	authHandler *auth.AuthHandler
}

func NewAttendanceHandler(eng *engine.Engine, authHandler *auth.AuthHandler) *AttendanceHandler {
	return &AttendanceHandler{engine: eng, authHandler: authHandler}
}

type MarkAttendanceRequest struct {
	auth.AuthInput
	Body struct {
		RegistrationID uint       `json:"registration_id" doc:"Registration to mark" required:"true"`
		Attended       bool       `json:"attended" doc:"Whether the student showed up"`
		CheckInTime    *time.Time `json:"check_in_time,omitempty"`
	}
}

type MarkAttendanceResponse struct {
	Body struct {
		ID             uint       `json:"id"`
		RegistrationID uint       `json:"registration_id"`
		Attended       bool       `json:"attended"`
		CheckInTime    *time.Time `json:"check_in_time,omitempty"`
	}
}

func (h *AttendanceHandler) HandleMarkAttendance(ctx context.Context, input *MarkAttendanceRequest) (*MarkAttendanceResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	att, err := h.engine.MarkAttendance(ctx, input.Body.RegistrationID, input.Body.Attended, input.Body.CheckInTime)
	if err != nil {
		return nil, mapEngineError(err)
	}

	res := &MarkAttendanceResponse{}
	res.Body.ID = att.ID
	res.Body.RegistrationID = att.RegistrationID
	res.Body.Attended = att.Attended
	res.Body.CheckInTime = att.CheckInTime
	return res, nil
}
