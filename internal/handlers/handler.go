package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/pagetest.net/internal/handlers/response"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	serviceName string
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods("GET")
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, map[string]string{"status": "ok", "service": h.serviceName})
}
