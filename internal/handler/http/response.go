package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/cache"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/service"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/oddsapi"
)

// responder writes JSON bodies for the handlers
type responder struct {
	logger zerolog.Logger
}

// jsonResponse writes a JSON response
func (h responder) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h responder) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

// serviceError maps a pipeline error to a status code and client message
func (h responder) serviceError(w http.ResponseWriter, err error) {
	var apiErr *oddsapi.APIError

	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, oddsapi.ErrMissingAPIKey):
		h.errorResponse(w, http.StatusServiceUnavailable, "odds provider is not configured")
	case errors.Is(err, cache.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, "odds not found")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		h.errorResponse(w, http.StatusNotFound, "event not found at odds provider")
	case errors.As(err, &apiErr):
		h.errorResponse(w, http.StatusBadGateway, apiErr.Error())
	default:
		h.logger.Error().Err(err).Msg("request failed")
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
