package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, categories, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.HealthCheck(ctx); err != nil {
		log.Printf("ERROR: health check failed: %v", err)
		writeSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}
