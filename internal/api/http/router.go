package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/stories-service/internal/api/http/handlers"
	"github.com/spec-kit/stories-service/internal/auth"
	"github.com/spec-kit/stories-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Stories        *handlers.StoriesHandler
	AuthMiddleware *auth.Middleware
	// Limiter throttles the credential endpoints; nil disables throttling.
	Limiter *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes. /stories sits behind the bearer-token
// gate; the credential endpoints are open but rate limited.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Status)

	authGroup := app.Group("/auth")
	if cfg.Limiter != nil {
		authGroup.Use(rateLimitMiddleware(cfg.Limiter))
	}
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	stories := app.Group("/stories", cfg.AuthMiddleware.Handle)
	stories.Post("/", cfg.Stories.Create)
	stories.Get("/", cfg.Stories.List)
}
