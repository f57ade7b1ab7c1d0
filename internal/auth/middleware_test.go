package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSessionMiddleware_SlidingSession(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, nil)

	t.Run("TokenRenewed", func(t *testing.T) {
		// A token expiring in 11 hours is past the halfway mark of the
		// 24-hour duration and must be refreshed.
		adminID := uint(1)
		claims := jwt.MapClaims{
			"admin_id": adminID,
			"exp":      time.Now().Add(11 * time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(cfg.JWTSecret))

		req, _ := http.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tokenString})
		rr := httptest.NewRecorder()

		var gotAdminID any
		middleware := handler.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAdminID = r.Context().Value(AdminIDKey)
			w.WriteHeader(http.StatusOK)
		}))
		middleware.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		if gotAdminID != adminID {
			t.Errorf("expected admin id %v in context, got %v", adminID, gotAdminID)
		}

		cookies := rr.Result().Cookies()
		found := false
		for _, c := range cookies {
			if c.Name == "auth_token" {
				found = true
				if c.Value == tokenString {
					t.Errorf("expected new token value, but got the old one")
				}
			}
		}
		if !found {
			t.Error("expected a refreshed auth_token cookie")
		}
	})

	t.Run("FreshTokenKept", func(t *testing.T) {
		tokenString, _ := handler.GenerateToken(1)

		req, _ := http.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tokenString})
		rr := httptest.NewRecorder()

		middleware := handler.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		middleware.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		for _, c := range rr.Result().Cookies() {
			if c.Name == "auth_token" {
				t.Error("fresh token should not be refreshed")
			}
		}
	})

	t.Run("AnonymousPassthrough", func(t *testing.T) {
		// No credentials: the request still reaches the handler, with no
		// identity stamped. Handlers reject via Authorize.
		req, _ := http.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()

		var gotAdminID any
		middleware := handler.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAdminID = r.Context().Value(AdminIDKey)
			w.WriteHeader(http.StatusOK)
		}))
		middleware.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		if gotAdminID != nil {
			t.Errorf("expected no admin id in context, got %v", gotAdminID)
		}
	})
}

func TestSessionMiddleware_APIKey(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.College{}, &models.Admin{}, &models.APIKey{})

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db)

	key := models.APIKey{AdminID: 7, Key: "valid-key", Name: "ci"}
	db.Create(&key)

	expired := time.Now().Add(-time.Hour)
	expiredKey := models.APIKey{AdminID: 7, Key: "expired-key", Name: "old", ExpiresAt: &expired}
	db.Create(&expiredKey)

	run := func(apiKey string) any {
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set("X-API-KEY", apiKey)
		rr := httptest.NewRecorder()
		var gotAdminID any
		handler.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAdminID = r.Context().Value(AdminIDKey)
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rr, req)
		return gotAdminID
	}

	if got := run("valid-key"); got != uint(7) {
		t.Errorf("expected admin id 7 for valid key, got %v", got)
	}
	if got := run("expired-key"); got != nil {
		t.Errorf("expected no identity for expired key, got %v", got)
	}
	if got := run("unknown-key"); got != nil {
		t.Errorf("expected no identity for unknown key, got %v", got)
	}

	var stored models.APIKey
	if err := db.Where("key = ?", "valid-key").First(&stored).Error; err != nil {
		t.Fatalf("failed to reload key: %v", err)
	}
	if stored.LastUsedAt == nil {
		t.Error("expected last_used_at to be stamped on use")
	}
}
