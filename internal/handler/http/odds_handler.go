package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/service"
)

// OddsHandler handles HTTP requests for event odds
type OddsHandler struct {
	responder
	service *service.OddsService
}

// NewOddsHandler creates a new odds HTTP handler
func NewOddsHandler(service *service.OddsService, logger zerolog.Logger) *OddsHandler {
	return &OddsHandler{
		responder: responder{logger: logger.With().Str("component", "odds_handler").Logger()},
		service:   service,
	}
}

// RegisterRoutes registers odds routes on r
func (h *OddsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/events/{sportKey}/{eventID}", func(r chi.Router) {
		r.Get("/odds", h.handleGetEventOdds)
		r.Get("/markets", h.handleDiscoverMarkets)
		r.Post("/refresh", h.handleRefreshEvent)
	})
	r.Get("/sports/{sportKey}/odds", h.handleGetSportOdds)
}

// handleGetEventOdds handles GET /api/v1/events/{sportKey}/{eventID}/odds
func (h *OddsHandler) handleGetEventOdds(w http.ResponseWriter, r *http.Request) {
	sportKey, eventID := chi.URLParam(r, "sportKey"), chi.URLParam(r, "eventID")

	summary, err := h.service.GetEventOdds(r.Context(), sportKey, eventID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("sport_key", sportKey).
			Str("event_id", eventID).
			Msg("event odds unavailable")
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}

// handleDiscoverMarkets handles GET /api/v1/events/{sportKey}/{eventID}/markets
func (h *OddsHandler) handleDiscoverMarkets(w http.ResponseWriter, r *http.Request) {
	sportKey, eventID := chi.URLParam(r, "sportKey"), chi.URLParam(r, "eventID")

	markets, err := h.service.DiscoverEvent(r.Context(), sportKey, eventID)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"sport_key": sportKey,
		"event_id":  eventID,
		"count":     len(markets),
		"markets":   markets,
	})
}

// handleRefreshEvent handles POST /api/v1/events/{sportKey}/{eventID}/refresh
func (h *OddsHandler) handleRefreshEvent(w http.ResponseWriter, r *http.Request) {
	sportKey, eventID := chi.URLParam(r, "sportKey"), chi.URLParam(r, "eventID")

	summary, err := h.service.RefreshEvent(r.Context(), sportKey, eventID)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}

// handleGetSportOdds handles GET /api/v1/sports/{sportKey}/odds
func (h *OddsHandler) handleGetSportOdds(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sportKey")

	summaries, err := h.service.GetSportOdds(r.Context(), sportKey)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("sport_key", sportKey).
			Msg("failed to retrieve sport odds")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve odds")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"sport_key": sportKey,
		"count":     len(summaries),
		"events":    summaries,
	})
}
