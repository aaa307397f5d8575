// Package router assembles the HTTP surface of the rescue service.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-foodrescue/internal/http/handlers"
	"service-foodrescue/internal/http/middleware"
	"service-foodrescue/internal/logx"
)

// RateLimit controls request throttling on the mutating API routes.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// Deps collects everything the router mounts.
type Deps struct {
	Base      *handlers.Handlers
	Alerts    *handlers.AlertHandler
	Parties   *handlers.PartyHandler
	Utility   *handlers.UtilityHandler
	WebSocket http.Handler
	Logger    logx.Logger
	RateLimit RateLimit
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/debug", chimw.Profiler())
	if d.WebSocket != nil {
		r.Handle("/ws", d.WebSocket)
	}

	r.Route("/api", func(api chi.Router) {
		if d.RateLimit.Enabled {
			api.Use(httprate.LimitByIP(d.RateLimit.Limit, d.RateLimit.Window))
		}
		api.Use(chimw.Timeout(15 * time.Second))

		api.Route("/alerts", func(ar chi.Router) {
			ar.Post("/", d.Alerts.Create)
			ar.Get("/", d.Alerts.List)
			ar.Get("/{id}", d.Alerts.Get)
			ar.Post("/{id}/accept", d.Alerts.Accept)
			ar.Post("/{id}/assign-driver", d.Alerts.AssignDriver)
			ar.Put("/{id}/status", d.Alerts.UpdateStatus)
		})

		api.Route("/restaurants", func(pr chi.Router) {
			pr.Post("/", d.Parties.CreateRestaurant)
			pr.Get("/", d.Parties.ListRestaurants)
			pr.Get("/{id}", d.Parties.GetRestaurant)
		})
		api.Route("/foodbanks", func(pr chi.Router) {
			pr.Post("/", d.Parties.CreateFoodBank)
			pr.Get("/", d.Parties.ListFoodBanks)
			pr.Get("/{id}", d.Parties.GetFoodBank)
		})
		api.Route("/drivers", func(pr chi.Router) {
			pr.Post("/", d.Parties.CreateDriver)
			pr.Get("/", d.Parties.ListDrivers)
			pr.Get("/available", d.Parties.ListAvailableDrivers)
			pr.Get("/{id}", d.Parties.GetDriver)
			pr.Put("/{id}/availability", d.Parties.SetDriverAvailability)
		})

		api.Route("/utility", func(ur chi.Router) {
			ur.Post("/geocode", d.Utility.Geocode)
			ur.Post("/distance", d.Utility.Distance)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
