// @title sensordash API
// @version 1.0
// @description Simulated sensor dashboard: readings, history, analytics and anomaly alerts.
// @BasePath /api/v1
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/itsatony/sensordash/api/docs"
	"github.com/itsatony/sensordash/api/middleware"
	"github.com/itsatony/sensordash/api/resources"
	"github.com/itsatony/sensordash/internal/dashboard"
)

type RouterConfig struct {
	CORSOrigins []string
	MetricsPath string
	Metrics     http.Handler
}

type Router struct {
	router    *mux.Router
	resources *resources.Resources
	config    RouterConfig
	handler   http.Handler
}

func NewRouter(svc *dashboard.Service, config RouterConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
		config:    config,
	}

	r.setupRoutes()
	r.handler = middleware.Recover(
		middleware.RequestLogger(
			middleware.CORS(middleware.CORSConfig{AllowedOrigins: config.CORSOrigins})(r.router),
		),
	)
	return r
}

func (r *Router) setupRoutes() {
	if r.config.Metrics != nil {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.router.Handle(path, r.config.Metrics).Methods(http.MethodGet)
	}

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.resources.System.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/docs", r.resources.System.Docs).Methods(http.MethodGet)

	// Dashboard
	api.HandleFunc("/dashboard", r.resources.Dashboard.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/analytics", r.resources.Dashboard.GetAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/groups", r.resources.Dashboard.GetGroups).Methods(http.MethodGet)
	api.HandleFunc("/filter", r.resources.Dashboard.GetFilter).Methods(http.MethodGet)
	api.HandleFunc("/filter", r.resources.Dashboard.SetFilter).Methods(http.MethodPut)
	api.HandleFunc("/refresh", r.resources.Dashboard.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/notifications", r.resources.Dashboard.ListNotifications).Methods(http.MethodGet)

	// Sensors
	sensors := api.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("", r.resources.Sensors.ListSensors).Methods(http.MethodGet)
	sensors.HandleFunc("/{id}", r.resources.Sensors.GetSensor).Methods(http.MethodGet)
	sensors.HandleFunc("/{id}/history", r.resources.Sensors.GetSensorHistory).Methods(http.MethodGet)

	api.HandleFunc("/readings/recent", r.resources.Sensors.ListRecentReadings).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
