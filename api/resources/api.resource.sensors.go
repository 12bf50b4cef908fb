package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/sensordash/internal/analytics"
	"github.com/itsatony/sensordash/internal/dashboard"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	dashboard *dashboard.Service
}

// @Summary List current readings
// @Description List the latest sensor readings, optionally restricted to one type. Without a type the selected filter applies.
// @Tags sensors
// @Produce json
// @Param type query string false "Sensor type or 'all'"
// @Success 200 {array} models.SensorReading
// @Failure 400 {object} errors.APIError
// @Router /sensors [get]
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.SensorQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query", err).WithRequestID(requestID))
		return
	}

	filter := query.Type
	if filter == "" {
		filter = h.dashboard.SelectedFilter()
	}
	respondWithJSON(w, http.StatusOK, analytics.Filter(h.dashboard.Snapshot().Sensors, filter))
}

// @Summary Get sensor
// @Description Get the latest reading of one sensor
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} models.SensorReading
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id} [get]
func (h *SensorHandlers) GetSensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	sensor, err := h.dashboard.Sensor(id)
	if err != nil {
		respondWithError(w, apiError(err, "failed to get sensor").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary Get sensor history
// @Description Get the chart series of one sensor, oldest point first
// @Tags sensors
// @Produce json
// @Param id path string true "Sensor ID"
// @Success 200 {object} models.SensorHistory
// @Failure 404 {object} errors.APIError
// @Router /sensors/{id}/history [get]
func (h *SensorHandlers) GetSensorHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	sensor, points, err := h.dashboard.History(id)
	if err != nil {
		respondWithError(w, apiError(err, "failed to get sensor history").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, models.SensorHistory{
		SensorID:   sensor.ID,
		SensorType: sensor.Type,
		Unit:       sensor.Unit,
		Points:     chartPoints(points),
	})
}

// @Summary List recent readings
// @Description List the newest raw readings across all sensors, oldest first. Served from the archive when one is configured.
// @Tags sensors
// @Produce json
// @Param limit query int false "Number of readings (1-1000, default 100)"
// @Success 200 {array} models.SensorReading
// @Failure 400 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /readings/recent [get]
func (h *SensorHandlers) ListRecentReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.RecentQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query", err).WithRequestID(requestID))
		return
	}
	if query.Limit == 0 {
		query.Limit = dashboard.DefaultRecentLimit
	}

	readings, err := h.dashboard.RecentReadings(r.Context(), query.Limit)
	if err != nil {
		respondWithError(w, apiError(err, "failed to get recent readings").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}

func chartPoints(points []models.HistoryPoint) []models.ChartPoint {
	out := make([]models.ChartPoint, len(points))
	for i, p := range points {
		out[i] = models.ChartPoint{
			Timestamp: p.Timestamp,
			Label:     p.Timestamp.Format(ChartLabelLayout),
			Value:     p.Value,
			IsAnomaly: p.IsAnomaly,
		}
	}
	return out
}
