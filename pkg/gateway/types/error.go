package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Detail is a human-readable message.
	Detail string `json:"detail"`
}

// Common detail messages.
const (
	DetailNotFound            = "Not Found"
	DetailMethodNotAllowed    = "Method Not Allowed"
	DetailInternalServerError = "Internal Server Error"
)

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetail writes {"detail": detail} with the given status code.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}
