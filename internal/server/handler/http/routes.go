package http

import (
	"net/http"

	"github.com/atinyakov/readsync/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the sync API.
//
// Routes:
//
//	GET  /healthcheck                → HealthCheck
//	POST /users/create               → authHandler.Create
//	GET  /users/auth                 → authHandler.Auth            (header auth)
//	PUT  /syncs/progress             → syncHandler.UpdateProgress  (header auth)
//	GET  /syncs/progress/{document}  → syncHandler.GetProgress     (header auth)
//
// Middleware chain (applied in order):
//  1. RequestID, RealIP
//  2. WithRequestLogging(logger)
//  3. Recover
//  4. HeaderAuth on the protected group
func NewRouter(
	authHandler *AuthHandler,
	syncHandler *SyncHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Recover)

	// Public endpoints
	r.Get("/healthcheck", HealthCheck)
	r.Post("/users/create", authHandler.Create)

	// Protected group: requires valid credential headers
	r.Group(func(r chi.Router) {
		r.Use(middleware.HeaderAuth(authHandler.AuthService))

		r.Get("/users/auth", authHandler.Auth)
		r.Put("/syncs/progress", syncHandler.UpdateProgress)
		r.Get("/syncs/progress/{document}", syncHandler.GetProgress)
	})

	return r
}
