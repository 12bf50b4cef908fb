package models

import "time"

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is a user-visible alert raised by a refresh tick.
type Notification struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Severity    Severity     `json:"severity"`
	SensorTypes []SensorType `json:"sensorTypes"`
	AnomalyType AnomalyType  `json:"anomalyType"`
	Confidence  float64      `json:"confidence"`
	CreatedAt   time.Time    `json:"createdAt"`
}
