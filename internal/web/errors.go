package web

// errors.go gives every error response the same JSON shape: a user-friendly
// message with a support code, while the technical detail goes to the server
// log with the request ID for correlation.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/CurtisDeCastro/csv-upsert/internal/core"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`

	// Missing and Extra carry the column lists for schema mismatches so the
	// caller can show both at once.
	Missing []string `json:"missingColumns,omitempty"`
	Extra   []string `json:"extraColumns,omitempty"`
}

// respondError logs the technical error and writes the user-facing JSON.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	resp := ErrorResponse{
		Error:  userMsg.Message,
		Action: userMsg.Action,
		Code:   userMsg.Code,
	}

	var mismatch *core.SchemaMismatchError
	if errors.As(err, &mismatch) {
		resp.Missing = mismatch.Missing
		resp.Extra = mismatch.Extra
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
