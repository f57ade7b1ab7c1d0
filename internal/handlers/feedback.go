package handlers

import (
	"context"
	"time"

	"github.com/campushub/campus-events-api/internal/engine"
)

type FeedbackHandler struct {
	engine *engine.Engine
}

func NewFeedbackHandler(eng *engine.Engine) *FeedbackHandler {
	return &FeedbackHandler{engine: eng}
}

type SubmitFeedbackRequest struct {
	Body struct {
		RegistrationID uint   `json:"registration_id" doc:"Registration the feedback belongs to" required:"true"`
		Rating         int    `json:"rating" doc:"1-5 scale"`
		Comments       string `json:"comments,omitempty"`
	}
}

type SubmitFeedbackResponse struct {
	Body struct {
		ID             uint      `json:"id"`
		RegistrationID uint      `json:"registration_id"`
		Rating         int       `json:"rating"`
		Comments       string    `json:"comments,omitempty"`
		SubmittedAt    time.Time `json:"submitted_at"`
	}
}

func (h *FeedbackHandler) HandleSubmitFeedback(ctx context.Context, input *SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	fb, err := h.engine.SubmitFeedback(ctx, input.Body.RegistrationID, input.Body.Rating, input.Body.Comments)
	if err != nil {
		return nil, mapEngineError(err)
	}

	res := &SubmitFeedbackResponse{}
	res.Body.ID = fb.ID
	res.Body.RegistrationID = fb.RegistrationID
	res.Body.Rating = fb.Rating
	res.Body.Comments = fb.Comments
	res.Body.SubmittedAt = fb.SubmittedAt
	return res, nil
}
