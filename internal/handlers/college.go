package handlers

import (
	"context"
	"fmt"

	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/campushub/campus-events-api/pkg/validator"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// CollegeHandler serves the thin lookup tables (colleges, event types). No
// engine rules apply here.
type CollegeHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCollegeHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CollegeHandler {
	return &CollegeHandler{db: db, authHandler: authHandler}
}

type CollegeResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type CreateCollegeRequest struct {
	Body struct {
		Name     string `json:"name" doc:"College name" validate:"required"`
		Location string `json:"location"`
	}
}

type CreateCollegeResponse struct {
	Body CollegeResponse
}

func (h *CollegeHandler) HandleCreateCollege(ctx context.Context, input *CreateCollegeRequest) (*CreateCollegeResponse, error) {
	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	college := models.College{
		Name:     input.Body.Name,
		Location: input.Body.Location,
		Status:   models.CollegeStatusActive,
	}
	if err := h.db.WithContext(ctx).Create(&college).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create college")
	}

	return &CreateCollegeResponse{Body: CollegeResponse{
		ID:       college.ID,
		Name:     college.Name,
		Location: college.Location,
		Status:   string(college.Status),
	}}, nil
}

type ListCollegesResponse struct {
	Body []CollegeResponse
}

func (h *CollegeHandler) HandleListColleges(ctx context.Context, _ *struct{}) (*ListCollegesResponse, error) {
	var colleges []models.College
	if err := h.db.WithContext(ctx).Order("name asc").Find(&colleges).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list colleges")
	}

	resp := make([]CollegeResponse, 0, len(colleges))
	for _, c := range colleges {
		resp = append(resp, CollegeResponse{
			ID:       c.ID,
			Name:     c.Name,
			Location: c.Location,
			Status:   string(c.Status),
		})
	}
	return &ListCollegesResponse{Body: resp}, nil
}

type CreateEventTypeRequest struct {
	auth.AuthInput
	Body struct {
		Name string `json:"name" doc:"Type name, e.g. Workshop" validate:"required"`
	}
}

type EventTypeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateEventTypeResponse struct {
	Body EventTypeResponse
}

func (h *CollegeHandler) HandleCreateEventType(ctx context.Context, input *CreateEventTypeRequest) (*CreateEventTypeResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	eventType := models.EventType{Name: input.Body.Name}
	if err := h.db.WithContext(ctx).Create(&eventType).Error; err != nil {
		return nil, huma.Error409Conflict("Event type already exists")
	}

	return &CreateEventTypeResponse{Body: EventTypeResponse{ID: eventType.ID, Name: eventType.Name}}, nil
}

type ListEventTypesResponse struct {
	Body []EventTypeResponse
}

func (h *CollegeHandler) HandleListEventTypes(ctx context.Context, _ *struct{}) (*ListEventTypesResponse, error) {
	var types []models.EventType
	if err := h.db.WithContext(ctx).Order("name asc").Find(&types).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list event types")
	}

	resp := make([]EventTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, EventTypeResponse{ID: t.ID, Name: t.Name})
	}
	return &ListEventTypesResponse{Body: resp}, nil
}
