package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/campushub/campus-events-api/internal/engine"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/rs/zerolog"
)

func TestHandleRegister(t *testing.T) {
	env := setupTest(t)
	handler := NewRegistrationHandler(env.engine, zerolog.Nop())
	ctx := context.Background()

	event, err := env.engine.CreateEvent(ctx, engine.CreateEventParams{
		CollegeID: env.college.ID,
		AdminID:   env.admin.ID,
		Title:     "Career Fair",
		TypeID:    env.eventType.ID,
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(30 * time.Hour),
		Capacity:  100,
	})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	req := &RegisterRequest{}
	req.Body.StudentID = env.student.ID
	req.Body.EventID = event.ID

	resp, err := handler.HandleRegister(ctx, req)
	if err != nil {
		t.Fatalf("HandleRegister returned error: %v", err)
	}
	if resp.Body.Status != "registered" {
		t.Errorf("expected status registered, got %s", resp.Body.Status)
	}

	t.Run("Duplicate", func(t *testing.T) {
		_, err := handler.HandleRegister(ctx, req)
		if err == nil {
			t.Fatal("expected error for duplicate registration, got nil")
		}
		if statusOf(t, err) != 409 {
			t.Errorf("expected 409, got %d", statusOf(t, err))
		}
	})

	t.Run("CrossCollege", func(t *testing.T) {
		other := models.College{Name: "Commerce College", Status: models.CollegeStatusActive}
		env.db.Create(&other)
		outsider := models.Student{CollegeID: other.ID, Name: "Mira", Email: "mira@other.test", Status: "active"}
		env.db.Create(&outsider)

		crossReq := &RegisterRequest{}
		crossReq.Body.StudentID = outsider.ID
		crossReq.Body.EventID = event.ID

		_, err := handler.HandleRegister(ctx, crossReq)
		if err == nil {
			t.Fatal("expected error for cross-college registration, got nil")
		}
		if statusOf(t, err) != 403 {
			t.Errorf("expected 403, got %d", statusOf(t, err))
		}
	})

	t.Run("CancelTwice", func(t *testing.T) {
		cancelReq := &CancelRegistrationRequest{ID: resp.Body.ID}
		if _, err := handler.HandleCancelRegistration(ctx, cancelReq); err != nil {
			t.Fatalf("HandleCancelRegistration returned error: %v", err)
		}

		_, err := handler.HandleCancelRegistration(ctx, cancelReq)
		if err == nil {
			t.Fatal("expected error for second cancel, got nil")
		}
		if statusOf(t, err) != 409 {
			t.Errorf("expected 409, got %d", statusOf(t, err))
		}
	})
}

func TestHandleSubmitFeedback(t *testing.T) {
	env := setupTest(t)
	regHandler := NewRegistrationHandler(env.engine, zerolog.Nop())
	fbHandler := NewFeedbackHandler(env.engine)
	ctx := context.Background()

	event, err := env.engine.CreateEvent(ctx, engine.CreateEventParams{
		CollegeID: env.college.ID,
		AdminID:   env.admin.ID,
		Title:     "Guest Lecture",
		TypeID:    env.eventType.ID,
		StartTime: time.Now().Add(1 * time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
		Capacity:  10,
	})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	regReq := &RegisterRequest{}
	regReq.Body.StudentID = env.student.ID
	regReq.Body.EventID = event.ID
	regResp, err := regHandler.HandleRegister(ctx, regReq)
	if err != nil {
		t.Fatalf("HandleRegister returned error: %v", err)
	}

	t.Run("InvalidRating", func(t *testing.T) {
		req := &SubmitFeedbackRequest{}
		req.Body.RegistrationID = regResp.Body.ID
		req.Body.Rating = 6

		_, err := fbHandler.HandleSubmitFeedback(ctx, req)
		if err == nil {
			t.Fatal("expected error for rating 6, got nil")
		}
		if statusOf(t, err) != 400 {
			t.Errorf("expected 400, got %d", statusOf(t, err))
		}
	})

	t.Run("NoAttendance", func(t *testing.T) {
		req := &SubmitFeedbackRequest{}
		req.Body.RegistrationID = regResp.Body.ID
		req.Body.Rating = 5

		_, err := fbHandler.HandleSubmitFeedback(ctx, req)
		if err == nil {
			t.Fatal("expected error without attendance, got nil")
		}
		if statusOf(t, err) != 409 {
			t.Errorf("expected 409, got %d", statusOf(t, err))
		}
	})
}
