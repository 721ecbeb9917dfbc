package handlers

import (
	"net/http"

	"pdftools/gateway/pkg/gateway/types"
)

// Root returns the handler for GET /.
func Root(version string) http.HandlerFunc {
	body := types.RootResponse{
		Name:        types.ServiceName,
		Version:     version,
		Description: types.ServiceDescription,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		types.WriteJSON(w, http.StatusOK, body)
	}
}

// Health returns the liveness handler for GET /health. It always answers
// 200 with the same body while the process is serving.
func Health() http.HandlerFunc {
	body := types.HealthResponse{Status: types.HealthStatusHealthy, Service: types.HealthServiceName}
	return func(w http.ResponseWriter, r *http.Request) {
		types.WriteJSON(w, http.StatusOK, body)
	}
}
