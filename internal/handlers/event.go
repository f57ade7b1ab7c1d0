package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/campushub/campus-events-api/internal/engine"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/campushub/campus-events-api/internal/notifier"
	"github.com/campushub/campus-events-api/pkg/validator"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type EventHandler struct {
	engine      *engine.Engine
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewEventHandler(eng *engine.Engine, n notifier.Notifier, authHandler *auth.AuthHandler, log zerolog.Logger) *EventHandler {
	return &EventHandler{engine: eng, notifier: n, authHandler: authHandler, log: log}
}

type EventResponse struct {
	ID          uint      `json:"id"`
	CollegeID   uint      `json:"college_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TypeID      uint      `json:"type_id"`
	Venue       string    `json:"venue"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	CreatedBy   uint      `json:"created_by"`
	Semester    string    `json:"semester"`
	Status      string    `json:"status"`
}

func eventResponse(e models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		CollegeID:   e.CollegeID,
		Title:       e.Title,
		Description: e.Description,
		TypeID:      e.TypeID,
		Venue:       e.Venue,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		CreatedBy:   e.CreatedByID,
		Semester:    e.Semester,
		Status:      string(e.Status),
	}
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		CollegeID   uint      `json:"college_id" doc:"Owning college" validate:"required"`
		Title       string    `json:"title" doc:"Event title" validate:"required"`
		Description string    `json:"description"`
		TypeID      uint      `json:"type_id" doc:"Event type" validate:"required"`
		Venue       string    `json:"venue"`
		StartTime   time.Time `json:"start_time" validate:"required"`
		EndTime     time.Time `json:"end_time" validate:"required"`
		Capacity    int       `json:"capacity" doc:"Maximum concurrent registrations" validate:"gte=0"`
		Semester    string    `json:"semester"`
	}
}

type CreateEventResponse struct {
	Body EventResponse
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	adminID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	event, err := h.engine.CreateEvent(ctx, engine.CreateEventParams{
		CollegeID:   input.Body.CollegeID,
		AdminID:     adminID,
		Title:       input.Body.Title,
		Description: input.Body.Description,
		TypeID:      input.Body.TypeID,
		Venue:       input.Body.Venue,
		StartTime:   input.Body.StartTime,
		EndTime:     input.Body.EndTime,
		Capacity:    input.Body.Capacity,
		Semester:    input.Body.Semester,
	})
	if err != nil {
		return nil, mapEngineError(err)
	}

	if h.notifier != nil {
		if err := h.notifier.AnnounceEvent(*event); err != nil {
			h.log.Warn().Err(err).Uint("event_id", event.ID).Msg("failed to announce event")
		}
	}

	return &CreateEventResponse{Body: eventResponse(*event)}, nil
}

type GetEventRequest struct {
	ID uint `path:"id"`
}

type GetEventResponse struct {
	Body EventResponse
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	event, err := h.engine.GetEvent(ctx, input.ID)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return &GetEventResponse{Body: eventResponse(*event)}, nil
}

type ListEventsRequest struct {
	CollegeID uint `query:"college_id" doc:"Restrict to one college"`
}

type ListEventsResponse struct {
	Body []EventResponse
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	events, err := h.engine.ListEvents(ctx, input.CollegeID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, eventResponse(e))
	}
	return &ListEventsResponse{Body: resp}, nil
}

type UpdateCapacityRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Capacity int `json:"capacity" doc:"New maximum" validate:"gte=0"`
	}
}

type UpdateCapacityResponse struct {
	Body EventResponse
}

func (h *EventHandler) HandleUpdateCapacity(ctx context.Context, input *UpdateCapacityRequest) (*UpdateCapacityResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	event, err := h.engine.UpdateEventCapacity(ctx, input.ID, input.Body.Capacity)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return &UpdateCapacityResponse{Body: eventResponse(*event)}, nil
}

type CancelEventRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type CancelEventResponse struct {
	Body EventResponse
}

func (h *EventHandler) HandleCancelEvent(ctx context.Context, input *CancelEventRequest) (*CancelEventResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	event, err := h.engine.CancelEvent(ctx, input.ID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if h.notifier != nil {
		if err := h.notifier.AnnounceCancellation(*event); err != nil {
			h.log.Warn().Err(err).Uint("event_id", event.ID).Msg("failed to announce cancellation")
		}
	}

	return &CancelEventResponse{Body: eventResponse(*event)}, nil
}

type ListEventRegistrationsRequest struct {
	ID uint `path:"id"`
}

type ListEventRegistrationsResponse struct {
	Body []RegistrationResponse
}

func (h *EventHandler) HandleListEventRegistrations(ctx context.Context, input *ListEventRegistrationsRequest) (*ListEventRegistrationsResponse, error) {
	regs, err := h.engine.ListEventRegistrations(ctx, input.ID)
	if err != nil {
		return nil, mapEngineError(err)
	}

	resp := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		resp = append(resp, registrationResponse(r))
	}
	return &ListEventRegistrationsResponse{Body: resp}, nil
}
