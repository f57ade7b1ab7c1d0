package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/campushub/campus-events-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const AdminIDKey contextKey = "admin_id"

// SessionMiddleware resolves the caller's identity before the typed handlers
// run. API keys take precedence over the JWT cookie so service integrations
// never depend on a browser session. Requests without usable credentials pass
// through anonymously; each protected handler rejects via Authorize.
func (h *AuthHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adminID, err := h.resolveAPIKey(r.Header.Get("X-API-KEY")); err == nil {
			ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie("auth_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		adminID, err := h.parseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// Sliding session: refresh the token once it is past the halfway mark
		if exp, err := tokenExpiry(cookie.Value); err == nil {
			remaining := time.Until(exp)
			if remaining < TokenDuration/2 {
				newToken, err := h.GenerateToken(adminID)
				if err == nil {
					http.SetCookie(w, &http.Cookie{
						Name:     "auth_token",
						Value:    newToken,
						Expires:  time.Now().Add(TokenDuration),
						HttpOnly: true,
						Path:     "/",
					})
				}
			}
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveAPIKey maps an X-API-KEY value to the owning admin. Expired keys do
// not authenticate; a successful lookup stamps last_used_at.
func (h *AuthHandler) resolveAPIKey(key string) (uint, error) {
	if key == "" {
		return 0, fmt.Errorf("no api key")
	}

	var keyModel models.APIKey
	if err := h.db.Where("key = ?", key).First(&keyModel).Error; err != nil {
		return 0, fmt.Errorf("unknown api key")
	}
	if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
		return 0, fmt.Errorf("api key expired")
	}

	h.db.Model(&keyModel).Update("last_used_at", time.Now())
	return keyModel.AdminID, nil
}

// tokenExpiry reads the exp claim from a token that has already been
// signature-checked by parseToken.
func tokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid token claims")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("missing exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}
