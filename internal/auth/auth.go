package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const TokenDuration = 24 * time.Hour

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.SSOClientID,
			ClientSecret: cfg.SSOClientSecret,
			RedirectURL:  cfg.SSORedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.SSOAuthURL,
				TokenURL: cfg.SSOTokenURL,
			},
		},
		db:  db,
		cfg: cfg,
	}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleCallback finishes the SSO flow. Admins are provisioned ahead of time;
// an identity with no matching active admin row is rejected.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(context.Background(), token)

	resp, err := client.Get(h.cfg.SSOUserInfoURL)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var ssoUser struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ssoUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	var admin models.Admin
	if err := h.db.Where("email = ? AND status = ?", ssoUser.Email, "active").First(&admin).Error; err != nil {
		http.Error(w, "Access denied: no admin account for this identity.", http.StatusForbidden)
		return
	}

	jwtToken, err := h.GenerateToken(admin.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    jwtToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})

	w.Write([]byte(fmt.Sprintf("Welcome %s! You are logged in.", admin.Name)))
}

func (h *AuthHandler) GenerateToken(adminID uint) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"exp":      time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// AuthInput carries the caller's credentials into huma handlers that need the
// acting admin.
type AuthInput struct {
	Cookie string `header:"Cookie"`
	APIKey string `header:"X-API-KEY"`
}

// Authorize resolves the acting admin. It prefers an identity already stamped
// by SessionMiddleware, then the X-API-KEY header, then the auth_token cookie.
// Returns a huma 401 on any failure.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (uint, error) {
	if adminID, ok := ctx.Value(AdminIDKey).(uint); ok {
		return adminID, nil
	}

	if adminID, err := h.resolveAPIKey(input.APIKey); err == nil {
		return adminID, nil
	}

	header := http.Header{}
	header.Add("Cookie", input.Cookie)
	req := http.Request{Header: header}
	cookie, err := req.Cookie("auth_token")
	if err != nil {
		return 0, huma.Error401Unauthorized("No token found")
	}

	adminID, err := h.parseToken(cookie.Value)
	if err != nil {
		return 0, huma.Error401Unauthorized("Invalid token")
	}
	return adminID, nil
}

func (h *AuthHandler) parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	adminIDFloat, ok := claims["admin_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	return uint(adminIDFloat), nil
}

type MeInput struct {
	AuthInput
}

type MeOutput struct {
	Body struct {
		ID        uint   `json:"id"`
		CollegeID uint   `json:"college_id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeInput) (*MeOutput, error) {
	adminID, err := h.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	if err := h.db.First(&admin, adminID).Error; err != nil {
		return nil, huma.Error404NotFound("Admin not found")
	}

	res := &MeOutput{}
	res.Body.ID = admin.ID
	res.Body.CollegeID = admin.CollegeID
	res.Body.Name = admin.Name
	res.Body.Email = admin.Email
	res.Body.Role = admin.Role
	return res, nil
}
