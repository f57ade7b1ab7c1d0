package auth

import (
	"context"
	"testing"

	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestHandleMe(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&models.College{}, &models.Admin{}, &models.APIKey{})

	college := models.College{Name: "Engineering College", Status: models.CollegeStatusActive}
	db.Create(&college)

	admin := models.Admin{
		CollegeID: college.ID,
		Name:      "Asha",
		Email:     "asha@college.test",
		Role:      "events",
		Status:    "active",
	}
	db.Create(&admin)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db)

	t.Run("Authenticated", func(t *testing.T) {
		token, _ := handler.GenerateToken(admin.ID)
		input := &MeInput{}
		input.Cookie = "auth_token=" + token

		resp, err := handler.HandleMe(context.Background(), input)
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}

		if resp.Body.Name != admin.Name {
			t.Errorf("expected name %s, got %s", admin.Name, resp.Body.Name)
		}
		if resp.Body.Email != admin.Email {
			t.Errorf("expected email %s, got %s", admin.Email, resp.Body.Email)
		}
		if resp.Body.CollegeID != college.ID {
			t.Errorf("expected college %d, got %d", college.ID, resp.Body.CollegeID)
		}
	})

	t.Run("APIKey", func(t *testing.T) {
		db.Create(&models.APIKey{AdminID: admin.ID, Key: "ci-key", Name: "ci"})

		input := &MeInput{}
		input.APIKey = "ci-key"

		resp, err := handler.HandleMe(context.Background(), input)
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}
		if resp.Body.ID != admin.ID {
			t.Errorf("expected admin %d, got %d", admin.ID, resp.Body.ID)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		input := &MeInput{}
		_, err := handler.HandleMe(context.Background(), input)
		if err == nil {
			t.Fatal("expected error for unauthenticated request, got nil")
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		input := &MeInput{}
		input.Cookie = "auth_token=not-a-token"
		_, err := handler.HandleMe(context.Background(), input)
		if err == nil {
			t.Fatal("expected error for invalid token, got nil")
		}
	})
}
