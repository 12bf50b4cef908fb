// FilePath: internal/models/models.sensor.go
package models

import "time"

// SensorType is the category label of a sensor. Several sensors may share one.
type SensorType string

const (
	Gas         SensorType = "Gas"
	Temperature SensorType = "Temperature"
	Humidity    SensorType = "Humidity"
	Pressure    SensorType = "Pressure"
	Light       SensorType = "Light"
	Motion      SensorType = "Motion"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// AnomalyType names the highest-priority detection rule a reading tripped.
type AnomalyType string

const (
	AnomalyNone         AnomalyType = "NORMAL"
	AnomalyExtreme      AnomalyType = "EXTREME"
	AnomalyCritical     AnomalyType = "CRITICAL"
	AnomalyTrend        AnomalyType = "TREND"
	AnomalyHighVelocity AnomalyType = "HIGH_VELOCITY"
	AnomalyWarning      AnomalyType = "WARNING"
	AnomalyOutOfRange   AnomalyType = "OUT_OF_RANGE"
)

// anomalyPriority lists the types most severe first.
var anomalyPriority = []AnomalyType{
	AnomalyExtreme,
	AnomalyCritical,
	AnomalyTrend,
	AnomalyHighVelocity,
	AnomalyWarning,
	AnomalyOutOfRange,
}

// Outranks reports whether t is more severe than other. Unknown and empty
// types rank below every listed one.
func (t AnomalyType) Outranks(other AnomalyType) bool {
	return t.rank() < other.rank()
}

func (t AnomalyType) rank() int {
	for i, p := range anomalyPriority {
		if p == t {
			return i
		}
	}
	return len(anomalyPriority)
}

// SensorReading is one current measurement. A refresh replaces the whole set.
// AnomalyType and Confidence are filled in by the detector; IsAnomaly is the
// out-of-range flag of the feed itself.
type SensorReading struct {
	ID          string      `json:"id" db:"sensor_id"`
	Type        SensorType  `json:"type" db:"sensor_type"`
	Value       float64     `json:"value" db:"value"`
	Unit        string      `json:"unit" db:"unit"`
	Icon        string      `json:"icon" db:"-"`
	Timestamp   time.Time   `json:"timestamp" db:"timestamp"`
	IsAnomaly   bool        `json:"isAnomaly" db:"is_anomaly"`
	Trend       Trend       `json:"trend" db:"trend"`
	AnomalyType AnomalyType `json:"anomalyType,omitempty" db:"anomaly_type"`
	Confidence  float64     `json:"confidence" db:"confidence"`
}

// HistoryPoint is one past sample of a sensor. Timestamp is the ordering key;
// display labels are derived from it at render time.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Value     float64   `json:"value" db:"value"`
	IsAnomaly bool      `json:"isAnomaly" db:"is_anomaly"`
}

// History maps sensor ids to their points, oldest first.
type History map[string][]HistoryPoint

// SensorProfile describes a simulated sensor kind and its normal operating range.
type SensorProfile struct {
	Type      SensorType `json:"type" mapstructure:"type"`
	Unit      string     `json:"unit" mapstructure:"unit"`
	Icon      string     `json:"icon" mapstructure:"icon"`
	NormalMin float64    `json:"normal_min" mapstructure:"normal_min"`
	NormalMax float64    `json:"normal_max" mapstructure:"normal_max"`
}

// Width returns the size of the normal range.
func (p SensorProfile) Width() float64 {
	return p.NormalMax - p.NormalMin
}

// Mid returns the centre of the normal range.
func (p SensorProfile) Mid() float64 {
	return (p.NormalMin + p.NormalMax) / 2
}
