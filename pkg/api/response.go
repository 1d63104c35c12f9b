package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/pkg/core/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}

// writeServiceError maps validation errors to 400 and everything else to 500
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if services.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.logger.Error("Request failed",
		zap.String("op", op),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}
