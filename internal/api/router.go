package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/accounts-be/internal/api/handlers"
	"github.com/isdelr/accounts-be/internal/auth"
	"github.com/isdelr/accounts-be/internal/services"
)

// Options carries the request-handling configuration the router needs.
type Options struct {
	SessionCookieName string
	SecureCookies     bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider, eventService services.EventServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService, opts.SessionCookieName, opts.SecureCookies)
	eventHandler := handlers.NewEventHandler(eventService)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Public authentication endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		// Everything below requires a valid session
		r.Group(func(r chi.Router) {
			r.Use(auth.SessionMiddleware(userService, opts.SessionCookieName))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.GetAll)
				r.Get("/me", userHandler.GetMe)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					// Mutations are owner-only
					r.Group(func(r chi.Router) {
						r.Use(auth.RequireOwner())
						r.Put("/", userHandler.Update)
						r.Delete("/", userHandler.Delete)
					})
				})
			})

			r.Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
