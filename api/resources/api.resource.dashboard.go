package resources

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itsatony/sensordash/internal/analytics"
	"github.com/itsatony/sensordash/internal/dashboard"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// DashboardHandlers serve the projected dashboard and the filter selection
type DashboardHandlers struct {
	dashboard *dashboard.Service
}

// @Summary Get dashboard
// @Description Get the full dashboard view: filtered sensors, type groups, analytics and status
// @Tags dashboard
// @Produce json
// @Param type query string false "Sensor type or 'all'; defaults to the selected filter"
// @Success 200 {object} models.DashboardView
// @Failure 400 {object} errors.APIError
// @Router /dashboard [get]
func (h *DashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.SensorQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, h.dashboard.View(query.Type))
}

// @Summary Get analytics
// @Description Get min, max, avg and anomaly count per sensor over its history and current value
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.AnalyticsSummary
// @Router /analytics [get]
func (h *DashboardHandlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dashboard.Analytics())
}

// @Summary Get type groups
// @Description Get one group per sensor type in first-seen order
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.SensorTypeGroup
// @Router /groups [get]
func (h *DashboardHandlers) GetGroups(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, analytics.GroupByType(h.dashboard.Snapshot().Sensors))
}

// @Summary Get filter
// @Description Get the selected type filter
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.FilterSelection
// @Router /filter [get]
func (h *DashboardHandlers) GetFilter(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.FilterSelection{Filter: h.dashboard.SelectedFilter()})
}

// @Summary Set filter
// @Description Select 'all' or one of the sensor types currently present
// @Tags dashboard
// @Accept json
// @Produce json
// @Param filter body models.FilterSelection true "Filter selection"
// @Success 200 {object} models.FilterSelection
// @Failure 400 {object} errors.APIError
// @Router /filter [put]
func (h *DashboardHandlers) SetFilter(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var selection models.FilterSelection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.dashboard.SelectFilter(selection.Filter); err != nil {
		respondWithError(w, apiError(err, "failed to set filter").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, selection)
}

// @Summary Refresh now
// @Description Run one refresh tick immediately and return the new dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardView
// @Router /refresh [post]
func (h *DashboardHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	// the tick completes even if the client goes away
	h.dashboard.Refresh(context.WithoutCancel(r.Context()))
	respondWithJSON(w, http.StatusOK, h.dashboard.View(""))
}

// @Summary List notifications
// @Description List the most recent anomaly alerts, newest first
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func (h *DashboardHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.dashboard.Notifications())
}
