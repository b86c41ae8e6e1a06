package routes

import (
	"net/http"

	"github.com/AnshRaj112/threads-backend/internal/handlers"
	"github.com/AnshRaj112/threads-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type passthrough = func(http.Handler) http.Handler

// Options carries what the route table needs besides the handlers. Nil
// middlewares are skipped.
type Options struct {
	DB          handlers.ConnectionState
	WriteLimit  passthrough
	SearchLimit passthrough
}

func optional(mw passthrough) passthrough {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}

func SetupRoutes(r chi.Router, h *handlers.Handler, o Options) {
	writeLimit := optional(o.WriteLimit)
	searchLimit := optional(o.SearchLimit)

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(o.DB))

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Get("/users/{id}", h.GetUser)
		r.Get("/users/{id}/threads", h.GetUserThreads)
		r.Get("/users/{id}/replies", h.GetUserReplies)
		r.Get("/users/{id}/tagged", h.GetUserTagged)
		r.Get("/threads", h.ListThreads)
		r.Get("/threads/{id}", h.GetThread)

		// Caller-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity)

			r.Get("/users/me", h.GetMe)
			r.With(writeLimit).Put("/users/me", h.UpdateMe)
			r.With(searchLimit).Get("/users", h.ListUsers)
			r.Get("/activity", h.GetActivity)
			r.With(writeLimit).Post("/uploads/profile-image", h.UploadProfileImage)
		})
	})
}

// InternalRouter serves operational endpoints on a listener that is not
// exposed to clients.
func InternalRouter(metrics http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metrics)
	return r
}
