package analytics

import (
	"github.com/itsatony/sensordash/internal/models"
)

// GroupByType folds sensors into one group per type, in first-seen order.
func GroupByType(sensors []models.SensorReading) []models.SensorTypeGroup {
	groups := []models.SensorTypeGroup{}
	index := make(map[models.SensorType]int)
	for _, s := range sensors {
		i, ok := index[s.Type]
		if !ok {
			i = len(groups)
			index[s.Type] = i
			groups = append(groups, models.SensorTypeGroup{Type: s.Type, Icon: s.Icon})
		}
		groups[i].Count++
		if s.IsAnomaly {
			groups[i].Anomalies++
		}
	}
	return groups
}

// Filter returns the sensors whose type equals filter, or all of them for
// models.FilterAll. An unknown type yields an empty slice.
func Filter(sensors []models.SensorReading, filter string) []models.SensorReading {
	if filter == models.FilterAll {
		out := make([]models.SensorReading, len(sensors))
		copy(out, sensors)
		return out
	}
	out := []models.SensorReading{}
	for _, s := range sensors {
		if string(s.Type) == filter {
			out = append(out, s)
		}
	}
	return out
}

// HasType reports whether any sensor carries the given type.
func HasType(sensors []models.SensorReading, t string) bool {
	for _, s := range sensors {
		if string(s.Type) == t {
			return true
		}
	}
	return false
}

// ResolveFilter keeps a selection only while its type is still present,
// falling back to models.FilterAll otherwise.
func ResolveFilter(sensors []models.SensorReading, selected string) string {
	if selected == "" || selected == models.FilterAll {
		return models.FilterAll
	}
	if HasType(sensors, selected) {
		return selected
	}
	return models.FilterAll
}

// AnomalousTypes lists the type of every anomalous sensor in sensor order.
// A type appears once per anomalous sensor.
func AnomalousTypes(sensors []models.SensorReading) []models.SensorType {
	var out []models.SensorType
	for _, s := range sensors {
		if s.IsAnomaly {
			out = append(out, s.Type)
		}
	}
	return out
}

// HasAnyAnomaly reports whether at least one sensor is anomalous.
func HasAnyAnomaly(sensors []models.SensorReading) bool {
	for _, s := range sensors {
		if s.IsAnomaly {
			return true
		}
	}
	return false
}

// Project builds the full dashboard view for the given snapshot and filter.
func Project(snap models.Snapshot, filter string) models.DashboardView {
	aggregates := AggregateAll(snap.Sensors, snap.History)
	return models.DashboardView{
		Filter:         filter,
		Sensors:        Filter(snap.Sensors, filter),
		Groups:         GroupByType(snap.Sensors),
		Analytics:      aggregates,
		TotalAnomalies: TotalAnomalies(aggregates),
		HasAnyAnomaly:  HasAnyAnomaly(snap.Sensors),
		LastUpdated:    snap.LastUpdated,
		Connected:      snap.Connected,
	}
}
