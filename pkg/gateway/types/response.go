package types

// Service identity returned by the root endpoint.
const (
	ServiceName        = "PDF Tools API"
	ServiceDescription = "Free PDF tools - Smallpdf alternative"
)

// Fixed fields of the liveness response. The service name does not follow
// TOOL_NAME; that value only labels metric series.
const (
	HealthStatusHealthy = "healthy"
	HealthServiceName   = "pdf-tools"
)

// RootResponse is the body of GET /.
type RootResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
