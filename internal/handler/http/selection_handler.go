package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/service"
)

// SelectionHandler serves the daily selections
type SelectionHandler struct {
	responder
	service *service.SelectionService
}

// NewSelectionHandler creates a new selections HTTP handler
func NewSelectionHandler(service *service.SelectionService, logger zerolog.Logger) *SelectionHandler {
	return &SelectionHandler{
		responder: responder{logger: logger.With().Str("component", "selection_handler").Logger()},
		service:   service,
	}
}

// RegisterRoutes registers selection routes on r
func (h *SelectionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/golden-bets/today", h.handleGolden)
	r.Get("/value-bets/today", h.handleValue)
	r.Get("/bet-builder/today", h.handleBetBuilder)
	r.Get("/predictions/today", h.handlePredictions)
	r.Get("/cache-status", h.handleCacheStatus)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/refresh-selections", h.handleRefresh)
		r.Delete("/selections", h.handleClear)
	})
}

func (h *SelectionHandler) handleGolden(w http.ResponseWriter, r *http.Request) {
	golden := h.service.Golden()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"total": len(golden),
		"bets":  golden,
	})
}

func (h *SelectionHandler) handleValue(w http.ResponseWriter, r *http.Request) {
	value := h.service.Value()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"total": len(value),
		"bets":  value,
	})
}

func (h *SelectionHandler) handleBetBuilder(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.service.BetBuilder())
}

func (h *SelectionHandler) handlePredictions(w http.ResponseWriter, r *http.Request) {
	predictions := h.service.Predictions()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"total":       len(predictions),
		"predictions": predictions,
	})
}

func (h *SelectionHandler) handleCacheStatus(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.service.Status())
}

// handleRefresh handles POST /api/v1/admin/refresh-selections
func (h *SelectionHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("manual selection refresh failed")
		h.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, snapshot)
}

// handleClear handles DELETE /api/v1/admin/selections
func (h *SelectionHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear()
	w.WriteHeader(http.StatusNoContent)
}
