package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campaignhq/maestro/pkg/team"
)

// errorResponse is the structured error body returned on every failure
type errorResponse struct {
	Error   string     `json:"error"`
	Details string     `json:"details,omitempty"`
	Task    *team.Task `json:"task,omitempty"`
}

// writeJSON encodes a response body with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps service errors to HTTP status codes. A task attached
// by the caller travels with the body so clients can inspect the failed
// task's state.
func (s *Server) writeError(w http.ResponseWriter, err error, task *team.Task) {
	var validationErr *team.ValidationError
	var notFoundErr *team.NotFoundError
	var routingErr *team.RoutingError
	var gatewayErr *team.GatewayError

	switch {
	case errors.As(err, &validationErr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Msg})
	case errors.As(err, &notFoundErr):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &routingErr):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: routingErr.Msg, Details: routingErr.Raw})
	case errors.As(err, &gatewayErr):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: gatewayErr.Error(), Task: task})
	default:
		s.logger.Error().Err(err).Msg("Unhandled service error")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &team.ValidationError{Msg: "invalid request body"}
	}
	return nil
}
