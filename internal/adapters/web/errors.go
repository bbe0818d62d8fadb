package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inventory-service/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a classified core failure onto its transport
// status. Only the short classified message is returned to the caller;
// wrapped store causes stay in the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := core.AsError(err)
	if !ok {
		log.Printf("unclassified error: %v", err)
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	status := http.StatusBadRequest
	switch e.Kind {
	case core.KindNotFound:
		status = http.StatusNotFound
	case core.KindDuplicateKey, core.KindConflict,
		core.KindInsufficientStock, core.KindInvalidTransactionType:
		status = http.StatusBadRequest
	case core.KindStoreUnavailable:
		log.Printf("store unavailable: %v", err)
		writeError(w, r, "storage unavailable", string(e.Kind), http.StatusServiceUnavailable)
		return
	}
	writeError(w, r, e.Message, string(e.Kind), status)
}

// decodeJSON decodes the request body into v, writing the error
// response itself on failure. Returns 413 when the body exceeds the
// middleware size limit, 400 for everything else.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
