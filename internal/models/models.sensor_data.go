// FilePath: internal/models/models.sensor_data.go
package models

// SensorAggregate summarises one sensor over its history plus its current value.
type SensorAggregate struct {
	SensorID      string     `json:"sensorId"`
	SensorType    SensorType `json:"sensorType"`
	Unit          string     `json:"unit"`
	Icon          string     `json:"icon"`
	Min           float64    `json:"min"`
	Max           float64    `json:"max"`
	Avg           float64    `json:"avg"`
	AnomalyCount  int        `json:"anomalyCount"`
	RangeCoverage float64    `json:"rangeCoverage"`
}

// SensorTypeGroup rolls up all sensors sharing a type.
type SensorTypeGroup struct {
	Type      SensorType `json:"type"`
	Icon      string     `json:"icon"`
	Count     int        `json:"count"`
	Anomalies int        `json:"anomalies"`
}
