package handler

import (
	"net/http"

	"humankey/internal/model"
)

// HealthResponse is returned by /healthz
type HealthResponse struct {
	Status string `json:"status"`
	Signer string `json:"signer"`
}

// Healthz reports whether the signer module could be loaded
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /healthz [get]
func Healthz(ready func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, model.CodeInvalidRequest, "Method not allowed. Should be GET")
			return
		}
		if ready != nil && !ready() {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Signer: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Signer: "ready"})
	}
}
