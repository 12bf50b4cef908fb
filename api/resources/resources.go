// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/itsatony/sensordash/internal/dashboard"
	"github.com/itsatony/sensordash/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// ChartLabelLayout formats history timestamps for chart axes.
const ChartLabelLayout = "15:04"

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Dashboard *DashboardHandlers
	Sensors   *SensorHandlers
	System    *SystemHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *dashboard.Service) *Resources {
	return &Resources{
		Dashboard: &DashboardHandlers{dashboard: svc},
		Sensors:   &SensorHandlers{dashboard: svc},
		System:    &SystemHandlers{dashboard: svc},
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		nuts.L.Errorf("[API] Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	if err.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s (request %s)", err.Error(), err.RequestID)
	} else {
		nuts.L.Warnf("[API] %s (request %s)", err.Error(), err.RequestID)
	}
	respondWithJSON(w, err.Code, err)
}

// apiError maps service errors onto API errors, keeping typed ones as they are.
func apiError(err error, fallback string) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewInternalError(fallback, err)
}
