package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions", h.Create)
	router.GET("/api/v1/sessions/:id", h.GetByID)
	router.DELETE("/api/v1/sessions/:id", h.Delete)
	router.POST("/api/v1/sessions/:id/events", h.ApplyEvent)
	router.GET("/api/v1/sessions/:id/receipt.ics", h.Receipt)
}

func (h *StudioHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/services", h.ListServices)
	router.GET("/api/v1/services/:id", h.GetService)
	router.GET("/api/v1/gallery", h.Gallery)
	router.GET("/api/v1/calendar", h.Calendar)
	router.GET("/api/v1/availability", h.Availability)
}

// MetricsHandler exposes a Prometheus registry at /metrics.
type MetricsHandler struct {
	handler http.Handler
}

func NewMetricsHandler(gatherer prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (h *MetricsHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/metrics", h.handler)
}
