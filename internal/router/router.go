package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"violation-tracker/internal/config"
	"violation-tracker/internal/handler"
	"violation-tracker/internal/middleware"
)

type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Violation   *handler.ViolationHandler
	Observation *handler.ObservationHandler
	Master      *handler.MasterHandler
	Report      *handler.ReportHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, cfg.TrustProxyHeaders)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", h.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/login", h.Auth.Login)
		api.Post("/refresh", h.Auth.Refresh)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Post("/logout", h.Auth.Logout)
			protected.Get("/me", h.Auth.Me)

			protected.Route("/violations", func(v chi.Router) {
				v.Get("/", h.Violation.List)
				v.Post("/", h.Violation.Create)
				v.Get("/{id}", h.Violation.Get)
				v.Put("/{id}", h.Violation.Update)
				v.Delete("/{id}", h.Violation.Delete)
			})

			protected.Route("/observations", func(o chi.Router) {
				o.Get("/", h.Observation.List)
				o.Post("/", h.Observation.Create)
				o.Get("/{id}", h.Observation.Get)
				o.Put("/{id}", h.Observation.Update)
				o.Delete("/{id}", h.Observation.Delete)
			})

			protected.Route("/master", func(m chi.Router) {
				m.Get("/violation-types", h.Master.ViolationTypes)
				m.Get("/vehicle-types", h.Master.VehicleTypes)
				m.Get("/configs", h.Master.Configs)

				m.Route("/users", func(u chi.Router) {
					u.Use(authMiddleware.RequireRoles("admin"))
					u.Get("/", h.User.List)
					u.Post("/", h.User.Create)
					u.Get("/{id}", h.User.Get)
					u.Put("/{id}", h.User.Update)
					u.Delete("/{id}", h.User.Delete)
				})
			})

			protected.Route("/reports", func(rp chi.Router) {
				rp.Get("/violations-by-type", h.Report.ViolationsByType)
				rp.Get("/observations-by-vehicle", h.Report.ObservationsByVehicle)
				rp.Get("/daily-violations", h.Report.DailyViolations)
			})

			protected.Get("/dashboard/summary", h.Report.DashboardSummary)
		})
	})

	return r
}
