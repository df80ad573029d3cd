package http

import "net/http"

// HealthCheck handles GET /healthcheck.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
