package api

import (
	"net/http"

	"github.com/dom/members-api/internal/api/handlers"
	"github.com/dom/members-api/internal/api/middleware"
	"github.com/dom/members-api/internal/config"
	"github.com/dom/members-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// APIPrefix is the mount point of every versioned route.
const APIPrefix = "/api/v1.0"

// Extras holds the optional pieces of the router. A nil Limiter disables
// login throttling; a nil Registry gets a fresh one.
type Extras struct {
	Limiter  *middleware.LoginLimiter
	Registry *prometheus.Registry
}

func NewRouter(services *service.Services, store handlers.Pinger, cfg *config.Config, log *logrus.Logger, extras Extras) http.Handler {
	registry := extras.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestLogger(&chiMiddleware.DefaultLogFormatter{Logger: log, NoColor: !cfg.IsDevelopment()}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Instrument)
	r.Use(chiMiddleware.RequestSize(cfg.MaxBodyBytes))

	healthHandler := handlers.NewHealthHandler(store, log)
	r.Get("/health", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, log)
	userHandler := handlers.NewUserHandler(services.User, services.Watch, log)
	moduleHandler := handlers.NewModuleHandler(services.Module, log)
	lessonHandler := handlers.NewLessonHandler(services.Lesson, services.Watch, log)
	bannerHandler := handlers.NewBannerHandler(services.Banner, log)

	gate := middleware.Auth(services.Tokens, services.User, log)

	r.Route(APIPrefix, func(r chi.Router) {
		// Public auth routes
		r.Group(func(r chi.Router) {
			if extras.Limiter != nil {
				r.Use(extras.Limiter.Limit)
			}
			r.Post("/auth/login", authHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(gate)

			r.Post("/auth/register", authHandler.Register)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/profile", userHandler.GetProfile)
				r.Put("/profile", userHandler.UpdateProfile)
				r.Get("/profile/watched", userHandler.ListWatched)
				r.Delete("/{uuid}", userHandler.Delete)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", bannerHandler.List)
				r.Post("/", bannerHandler.Create)
				r.Get("/{id}", bannerHandler.Get)
				r.Put("/{id}", bannerHandler.Update)
				r.Delete("/{id}", bannerHandler.Delete)
			})

			r.Route("/modules", func(r chi.Router) {
				r.Get("/", moduleHandler.List)
				r.Post("/", moduleHandler.Create)
				r.Get("/{id}", moduleHandler.Get)
				r.Put("/{id}", moduleHandler.Update)
				r.Delete("/{id}", moduleHandler.Delete)
				r.Get("/{id}/lessons", moduleHandler.ListLessons)
			})

			r.Route("/lessons", func(r chi.Router) {
				r.Post("/", lessonHandler.Create)
				r.Get("/{id}", lessonHandler.Get)
				r.Put("/{id}", lessonHandler.Update)
				r.Delete("/{id}", lessonHandler.Delete)
				r.Post("/{id}/watched", lessonHandler.MarkWatched)
			})
		})
	})

	return r
}
