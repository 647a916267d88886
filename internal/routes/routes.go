// internal/routes/routes.go
package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sanctra-backend/internal/handlers"
	"sanctra-backend/internal/middleware"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Generate *handlers.GenerateHandler
	Profile  *handlers.ProfileHandler
	CTY      *handlers.CTYHandler
	Posts    *handlers.PostsHandler
	Messages *handlers.MessagesHandler
	Garden   *handlers.GardenHandler
}

func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger())
	r.Use(middleware.Recoverer())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.Metrics())
	// Video generation can poll for minutes, so the budget is generous.
	r.Use(middleware.Timeout(300 * time.Second))
	r.Use(middleware.CORS())

	// Health check routes
	r.Get("/", h.Health.HealthCheck)
	r.Get("/health", h.Health.HealthCheck)

	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no authentication required)
		r.Group(func(r chi.Router) {
			r.Get("/generate/costs", h.Generate.GetCosts)
			r.Get("/posts", h.Posts.ListPosts)
		})

		// Protected routes (authentication required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth())

			r.Route("/generate", func(r chi.Router) {
				r.Post("/image", h.Generate.GenerateImage)
				r.Post("/sound", h.Generate.GenerateSound)
				r.Post("/living-image", h.Generate.GenerateLivingImage)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/me", h.Profile.GetMe)
				r.Put("/me", h.Profile.UpdateMe)
				r.Get("/{username}", h.Profile.GetByUsername)
			})

			r.Route("/cty", func(r chi.Router) {
				r.Get("/balance", h.CTY.GetBalance)
				r.Post("/claim", h.CTY.ClaimDaily)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", h.Posts.CreatePost)
				r.Delete("/{postId}", h.Posts.DeletePost)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/", h.Messages.SendMessage)
				r.Get("/{peerId}", h.Messages.GetConversation)
			})

			r.Route("/garden", func(r chi.Router) {
				r.Post("/join", h.Garden.Join)
				r.Post("/heartbeat", h.Garden.Heartbeat)
				r.Get("/whispers", h.Garden.ListWhispers)
				r.Post("/whispers", h.Garden.PostWhisper)
			})
		})
	})

	return r
}
