package resources

import (
	"net/http"

	"github.com/itsatony/sensordash/internal/dashboard"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// SystemHandlers serve health and API documentation
type SystemHandlers struct {
	dashboard *dashboard.Service
}

// @Summary Health check
// @Description Report service status, version and the simulated connectivity flag
// @Tags system
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Failure 503 {object} errors.APIError
// @Router /health [get]
func (h *SystemHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if !h.dashboard.Loaded() {
		respondWithError(w, errors.NewUnavailableError("sensor data not loaded yet", nil).WithRequestID(nuts.NID("req", 12)))
		return
	}

	snap := h.dashboard.Snapshot()
	respondWithJSON(w, http.StatusOK, models.HealthStatus{
		Status:      "ok",
		Version:     nuts.GetVersion(),
		Connected:   snap.Connected,
		LastUpdated: snap.LastUpdated,
		Tick:        snap.Tick,
	})
}

// Docs serves the registered OpenAPI document.
func (h *SystemHandlers) Docs(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, errors.NewInternalError("api documentation unavailable", err).WithRequestID(nuts.NID("req", 12)))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
