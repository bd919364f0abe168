// Package servemux wires the query router's dispatch behind a minimal
// illustrative HTTP surface (§6's "served API, illustrative" note): a
// chi router exposing /query, /health, /games/today, /injuries and the
// /updates/run and /updates/daily triggers. The HTTP surface itself is not
// a spec'd concern — no auth, rate limiting, or caching contract is
// asserted — so this package stays thin.
//
// Grounded on internal/api/server.go's chi + cors wiring shape and
// go/internal/api/respond/respond.go's JSON response helpers.
package servemux

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the structured JSON error shape returned on failures.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteJSON marshals v and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
