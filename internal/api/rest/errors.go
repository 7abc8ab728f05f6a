package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/clintrovert/tracksync/internal/asana"
	"github.com/clintrovert/tracksync/internal/gateway"
)

// writeError maps a failure onto the response contract: a JSON body of
// the form {"error": message} with the status code owed to the error
// kind. Upstream errors mirror the upstream's own status code.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validation *gateway.ValidationError
	var notConfigured *gateway.NotConfiguredError
	var noWorkspaces *gateway.NoWorkspacesError
	var upstream *asana.UpstreamError
	var storeErr *gateway.StoreError

	switch {
	case errors.As(err, &validation):
		writeJSONError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notConfigured):
		writeJSONError(w, http.StatusBadRequest, notConfigured.Error())
	case errors.As(err, &noWorkspaces):
		writeJSONError(w, http.StatusNotFound, noWorkspaces.Error())
	case errors.As(err, &upstream):
		h.logger.Error("upstream call failed",
			zap.Int("status", upstream.StatusCode),
			zap.String("body", upstream.Body),
		)
		writeJSON(w, upstream.StatusCode, map[string]string{
			"error":  upstream.Error(),
			"detail": upstream.Body,
		})
	case errors.As(err, &storeErr):
		h.logger.Error("config store query failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, storeErr.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		msg := err.Error()
		if msg == "" {
			msg = "internal server error"
		}
		writeJSONError(w, http.StatusInternalServerError, msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
