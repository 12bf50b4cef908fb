// Package analytics derives per-sensor statistics, type groups and filtered
// views from a sensor set and its history. Every function here is pure.
package analytics

import (
	"github.com/itsatony/sensordash/internal/models"
)

// Aggregate summarises s over its history in h plus its current value.
// Missing or empty history is valid: min, max and avg then equal s.Value.
func Aggregate(s models.SensorReading, h models.History) models.SensorAggregate {
	minV, maxV, sum := s.Value, s.Value, s.Value
	anomalies := 0
	if s.IsAnomaly {
		anomalies = 1
	}

	points := h[s.ID]
	for _, p := range points {
		if p.Value < minV {
			minV = p.Value
		}
		if p.Value > maxV {
			maxV = p.Value
		}
		sum += p.Value
		if p.IsAnomaly {
			anomalies++
		}
	}

	avg := sum / float64(len(points)+1)
	// rounding can push the mean a hair outside [min, max] for near-equal values
	avg = clamp(avg, minV, maxV)

	return models.SensorAggregate{
		SensorID:      s.ID,
		SensorType:    s.Type,
		Unit:          s.Unit,
		Icon:          s.Icon,
		Min:           minV,
		Max:           maxV,
		Avg:           avg,
		AnomalyCount:  anomalies,
		RangeCoverage: RangeCoverage(minV, avg, maxV),
	}
}

// AggregateAll returns one aggregate per sensor, in sensor order.
func AggregateAll(sensors []models.SensorReading, h models.History) []models.SensorAggregate {
	out := make([]models.SensorAggregate, 0, len(sensors))
	for _, s := range sensors {
		out = append(out, Aggregate(s, h))
	}
	return out
}

// TotalAnomalies sums the anomaly counts of all aggregates.
func TotalAnomalies(aggregates []models.SensorAggregate) int {
	total := 0
	for _, a := range aggregates {
		total += a.AnomalyCount
	}
	return total
}

// RangeCoverage is where avg sits between min and max, as a percentage.
func RangeCoverage(minV, avg, maxV float64) float64 {
	if maxV <= minV {
		return 0
	}
	return (avg - minV) / (maxV - minV) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
