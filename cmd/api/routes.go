package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PaulBabatuyi/msgBoard-REST/internal/hub"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/metrics"
	"github.com/PaulBabatuyi/msgBoard-REST/internal/middleware"
)

// routerDeps collects everything newRouter wires into the HTTP surface.
type routerDeps struct {
	api      *api
	hub      *hub.Hub
	limiter  *middleware.LimiterStore
	gatherer prometheus.Gatherer
}

// newRouter builds the full route table. The websocket and metrics
// endpoints sit outside the logging/metrics chain: the upgrade needs
// the raw ResponseWriter and the scrape endpoint should not count
// itself.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	if deps.hub != nil {
		r.Get("/ws", deps.hub.ServeWS)
	}
	if deps.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.gatherer))
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Recoverer)
		r.Use(middleware.RequestLog)
		if deps.api.collector != nil {
			r.Use(deps.api.collector.Middleware)
		}

		a := deps.api

		r.Route("/user", func(r chi.Router) {
			// signup and login carry per-IP rate limiting; unthrottled
			// retries against these two are a credential-stuffing vector
			if deps.limiter != nil {
				limited := r.With(middleware.RateLimit(deps.limiter))
				limited.Post("/signup", a.handleSignup)
				limited.Post("/login", a.handleLogin)
			} else {
				r.Post("/signup", a.handleSignup)
				r.Post("/login", a.handleLogin)
			}
			r.Patch("/resetPassword", a.handleResetPassword)
			r.Get("/getUser/{username}", a.handleGetUser)
			r.Delete("/deleteUser/{username}", a.handleDeleteUser)
		})

		r.Route("/messaging", func(r chi.Router) {
			r.Post("/addMessage", a.handleAddMessage)
			r.Get("/getMessages", a.handleGetMessages)
		})

		r.Get("/healthz", a.handleHealthz)
	})

	return r
}
