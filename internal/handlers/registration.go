package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/campus-events-api/internal/engine"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/campushub/campus-events-api/pkg/validator"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type RegistrationHandler struct {
	engine *engine.Engine
	log    zerolog.Logger
}

func NewRegistrationHandler(eng *engine.Engine, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{engine: eng, log: log}
}

type RegistrationResponse struct {
	ID               uint      `json:"id"`
	StudentID        uint      `json:"student_id"`
	EventID          uint      `json:"event_id"`
	RegistrationTime time.Time `json:"registration_time"`
	Status           string    `json:"status"`
}

func registrationResponse(r models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:               r.ID,
		StudentID:        r.StudentID,
		EventID:          r.EventID,
		RegistrationTime: r.RegistrationTime,
		Status:           string(r.Status),
	}
}

type RegisterRequest struct {
	Body struct {
		StudentID uint `json:"student_id" doc:"Student registering" validate:"required"`
		EventID   uint `json:"event_id" doc:"Target event" validate:"required"`
	}
}

type RegisterResponse struct {
	Body RegistrationResponse
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*RegisterResponse, error) {
	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	reg, err := h.engine.CreateRegistration(ctx, input.Body.StudentID, input.Body.EventID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	return &RegisterResponse{Body: registrationResponse(*reg)}, nil
}

type CancelRegistrationRequest struct {
	ID uint `path:"id"`
}

type CancelRegistrationResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *RegistrationHandler) HandleCancelRegistration(ctx context.Context, input *CancelRegistrationRequest) (*CancelRegistrationResponse, error) {
	if err := h.engine.CancelRegistration(ctx, input.ID); err != nil {
		return nil, mapEngineError(err)
	}

	res := &CancelRegistrationResponse{}
	res.Body.Message = "Registration cancelled"
	return res, nil
}
