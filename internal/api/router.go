package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/othala/internal/session"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// notify, if non-nil, is called after imports and exports.
func NewRouter(svc *session.Service, authEnabled bool, token string, sseHandler http.Handler, notify EventNotifier) chi.Router {
	h := NewHandler(svc, notify)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Document.
	r.Get("/portfolio", h.GetPortfolio)
	r.Put("/portfolio", h.ReplacePortfolio)
	r.Put("/portfolio/profile", h.UpdateProfile)
	r.Get("/portfolio/export", h.Export)
	r.Post("/portfolio/import", h.Import)

	// Socials (position-addressed, no ids).
	r.Post("/portfolio/socials", h.CreateSocial)
	r.Put("/portfolio/socials/{index}", h.UpdateSocial)
	r.Delete("/portfolio/socials/{index}", h.DeleteSocial)

	// Jobs/projects.
	r.Post("/portfolio/jobs", h.CreateJobProject)
	r.Put("/portfolio/jobs/{id}", h.UpdateJobProject)
	r.Delete("/portfolio/jobs/{id}", h.DeleteJobProject)
	r.Post("/portfolio/jobs/{id}/move", h.Move(session.CollectionJobsProjects))

	// Education.
	r.Post("/portfolio/education", h.CreateEducation)
	r.Put("/portfolio/education/{id}", h.UpdateEducation)
	r.Delete("/portfolio/education/{id}", h.DeleteEducation)
	r.Post("/portfolio/education/{id}/move", h.Move(session.CollectionEducation))

	// Achievements.
	r.Post("/portfolio/achievements", h.CreateAchievement)
	r.Put("/portfolio/achievements/{id}", h.UpdateAchievement)
	r.Delete("/portfolio/achievements/{id}", h.DeleteAchievement)
	r.Post("/portfolio/achievements/{id}/move", h.Move(session.CollectionAchievements))

	// Search and resolve.
	r.Get("/search", h.Search)
	r.Get("/records/{id}", h.GetRecord)
	r.Get("/skills", h.Skills)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
