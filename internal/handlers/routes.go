package handlers

import (
	"net/http"

	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(
	r *chi.Mux,
	authHandler *auth.AuthHandler,
	collegeHandler *CollegeHandler,
	rosterHandler *RosterHandler,
	eventHandler *EventHandler,
	registrationHandler *RegistrationHandler,
	attendanceHandler *AttendanceHandler,
	feedbackHandler *FeedbackHandler,
	apiKeyHandler *APIKeyHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(authHandler.SessionMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Campus Events API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/sso/login", authHandler.HandleLogin)
	r.Get("/auth/sso/callback", authHandler.HandleCallback)
	huma.Get(api, "/me", authHandler.HandleMe, withAdminAuth)

	// Lookup tables
	huma.Post(api, "/colleges", collegeHandler.HandleCreateCollege)
	huma.Get(api, "/colleges", collegeHandler.HandleListColleges)
	huma.Post(api, "/event-types", collegeHandler.HandleCreateEventType, withAdminAuth)
	huma.Get(api, "/event-types", collegeHandler.HandleListEventTypes)

	// Roster
	huma.Post(api, "/admins", rosterHandler.HandleCreateAdmin)
	huma.Post(api, "/students", rosterHandler.HandleCreateStudent)
	huma.Get(api, "/colleges/{id}/students", rosterHandler.HandleListStudents)

	// Events (mutations require an admin session or API key)
	huma.Post(api, "/events", eventHandler.HandleCreateEvent, withAdminAuth)
	huma.Get(api, "/events", eventHandler.HandleListEvents)
	huma.Get(api, "/events/{id}", eventHandler.HandleGetEvent)
	huma.Patch(api, "/events/{id}/capacity", eventHandler.HandleUpdateCapacity, withAdminAuth)
	huma.Post(api, "/events/{id}/cancel", eventHandler.HandleCancelEvent, withAdminAuth)
	huma.Get(api, "/events/{id}/registrations", eventHandler.HandleListEventRegistrations)

	// Student-facing operations
	huma.Post(api, "/registrations", registrationHandler.HandleRegister)
	huma.Post(api, "/registrations/{id}/cancel", registrationHandler.HandleCancelRegistration)
	huma.Post(api, "/attendance", attendanceHandler.HandleMarkAttendance, withAdminAuth)
	huma.Post(api, "/feedback", feedbackHandler.HandleSubmitFeedback)

	// API keys
	huma.Post(api, "/api-keys", apiKeyHandler.HandleCreate, withAdminAuth)
	huma.Get(api, "/api-keys", apiKeyHandler.HandleList, withAdminAuth)
	huma.Delete(api, "/api-keys/{id}", apiKeyHandler.HandleDelete, withAdminAuth)
}

func withAdminAuth(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
}
