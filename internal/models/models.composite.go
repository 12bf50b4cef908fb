// FilePath: internal/models/models.composite.go
package models

import "time"

// Snapshot is the complete state produced by one refresh tick.
type Snapshot struct {
	Sensors     []SensorReading `json:"sensors"`
	History     History         `json:"history"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Connected   bool            `json:"connected"`
	Filter      string          `json:"filter"`
	Tick        uint64          `json:"tick"`
}

// DashboardView is the projection served to clients.
type DashboardView struct {
	Filter         string            `json:"filter"`
	Sensors        []SensorReading   `json:"sensors"`
	Groups         []SensorTypeGroup `json:"groups"`
	Analytics      []SensorAggregate `json:"analytics"`
	TotalAnomalies int               `json:"totalAnomalies"`
	HasAnyAnomaly  bool              `json:"hasAnyAnomaly"`
	LastUpdated    time.Time         `json:"lastUpdated"`
	Connected      bool              `json:"connected"`
}

// AnalyticsSummary pairs per-sensor aggregates with their total anomaly count.
type AnalyticsSummary struct {
	Analytics      []SensorAggregate `json:"analytics"`
	TotalAnomalies int               `json:"totalAnomalies"`
}

// ChartPoint is a history point as rendered, with its display label.
type ChartPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
	IsAnomaly bool      `json:"isAnomaly"`
}

// SensorHistory is the chart series of one sensor.
type SensorHistory struct {
	SensorID   string       `json:"sensorId"`
	SensorType SensorType   `json:"sensorType"`
	Unit       string       `json:"unit"`
	Points     []ChartPoint `json:"points"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Connected   bool      `json:"connected"`
	LastUpdated time.Time `json:"lastUpdated"`
	Tick        uint64    `json:"tick"`
}
