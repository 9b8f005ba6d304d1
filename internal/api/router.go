package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldplan/fieldplan/internal/allocation"
	"github.com/fieldplan/fieldplan/internal/api/handler"
	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/auth"
	"github.com/fieldplan/fieldplan/internal/helicopter"
	"github.com/fieldplan/fieldplan/internal/location"
	"github.com/fieldplan/fieldplan/internal/metrics"
	"github.com/fieldplan/fieldplan/internal/plan"
	"github.com/fieldplan/fieldplan/internal/portfolio"
	"github.com/fieldplan/fieldplan/internal/project"
	"github.com/fieldplan/fieldplan/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger       handler.DBPinger
	Version        string
	AuthService    *auth.Service
	UserRepo       auth.UserRepository
	TeamRepo       team.Repository
	LocationRepo   location.Repository
	HelicopterRepo helicopter.Repository
	PortfolioRepo  portfolio.Repository
	ProjectRepo    project.Repository
	PlanRepo       plan.Repository
	AllocationRepo allocation.Repository
	Metrics        *metrics.Metrics
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	r.Method("GET", "/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.AuthService))
		r.Use(middleware.RequireWriter())

		teamHandler := handler.NewTeamHandler(deps.TeamRepo, deps.LocationRepo)
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.Create)
			r.Get("/", teamHandler.List)
			r.Get("/{id}", teamHandler.GetByID)
			r.Patch("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
		})

		locationHandler := handler.NewLocationHandler(deps.LocationRepo)
		r.Route("/locations", func(r chi.Router) {
			r.Post("/", locationHandler.Create)
			r.Get("/", locationHandler.List)
			r.Get("/{id}", locationHandler.GetByID)
			r.Patch("/{id}", locationHandler.Update)
			r.Delete("/{id}", locationHandler.Delete)
		})

		helicopterHandler := handler.NewHelicopterHandler(deps.HelicopterRepo)
		r.Route("/helicopters", func(r chi.Router) {
			r.Post("/", helicopterHandler.Create)
			r.Get("/", helicopterHandler.List)
			r.Get("/{id}", helicopterHandler.GetByID)
			r.Patch("/{id}", helicopterHandler.Update)
			r.Delete("/{id}", helicopterHandler.Delete)
		})

		portfolioHandler := handler.NewPortfolioHandler(deps.PortfolioRepo, deps.ProjectRepo, deps.Metrics.PortfolioImports)
		projectHandler := handler.NewProjectHandler(deps.ProjectRepo)
		r.Route("/portfolios", func(r chi.Router) {
			r.Post("/", portfolioHandler.Create)
			r.Post("/import", portfolioHandler.Import)
			r.Get("/", portfolioHandler.List)
			r.Get("/{id}", portfolioHandler.GetByID)
			r.Patch("/{id}", portfolioHandler.Update)
			r.Delete("/{id}", portfolioHandler.Delete)

			r.Route("/{portfolioId}/projects", func(r chi.Router) {
				r.Post("/", projectHandler.Create)
				r.Get("/", projectHandler.List)
				r.Get("/{id}", projectHandler.GetByID)
				r.Patch("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})

		planHandler := handler.NewPlanHandler(deps.PlanRepo)
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", planHandler.Create)
			r.Get("/", planHandler.List)
			r.Get("/{id}", planHandler.GetByID)
			r.Delete("/{id}", planHandler.Delete)
		})

		allocationHandler := handler.NewAllocationHandler(deps.AllocationRepo, deps.HelicopterRepo, deps.Metrics.AllocationsRun)
		r.Route("/allocations", func(r chi.Router) {
			r.Post("/", allocationHandler.Create)
			r.Get("/", allocationHandler.List)
			r.Get("/{id}", allocationHandler.GetByID)
			r.Delete("/{id}", allocationHandler.Delete)
		})

		userHandler := handler.NewUserHandler(deps.UserRepo, deps.AuthService)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireSuperuser())
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Delete("/{id}", userHandler.Revoke)
		})
	})

	return r
}
