// Package httputil writes JSON responses and the error envelope shared by
// every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "ssto/pkg/domain-errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Retryable        bool   `json:"retryable"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as {"error","error_description","retryable"}.
// Errors without a domain code, and internal errors, never leak their
// message.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok {
		de = &dErrors.Error{Code: dErrors.CodeInternal}
	}
	resp := errorResponse{
		Error:     string(de.Code),
		Retryable: de.Retryable(),
	}
	if de.Code != dErrors.CodeInternal {
		resp.ErrorDescription = de.Message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), resp)
}
