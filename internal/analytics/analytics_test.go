package analytics

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/itsatony/sensordash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(id string, t models.SensorType, value float64, anomaly bool) models.SensorReading {
	return models.SensorReading{ID: id, Type: t, Value: value, IsAnomaly: anomaly, Trend: models.TrendStable}
}

func points(values ...float64) []models.HistoryPoint {
	now := time.Now()
	out := make([]models.HistoryPoint, len(values))
	for i, v := range values {
		out[i] = models.HistoryPoint{Timestamp: now.Add(time.Duration(i-len(values)) * time.Hour), Value: v}
	}
	return out
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name      string
		sensor    models.SensorReading
		history   models.History
		min       float64
		max       float64
		avg       float64
		anomalies int
	}{
		{
			name:    "absent history",
			sensor:  reading("a", models.Gas, 12.5, false),
			history: models.History{},
			min:     12.5, max: 12.5, avg: 12.5,
		},
		{
			name:    "empty history with anomalous reading",
			sensor:  reading("a", models.Gas, 70, true),
			history: models.History{"a": {}},
			min:     70, max: 70, avg: 70,
			anomalies: 1,
		},
		{
			name:    "current value included in the mean",
			sensor:  reading("t", models.Temperature, 30, false),
			history: models.History{"t": points(10, 20)},
			min:     10, max: 30, avg: 20,
		},
		{
			name:   "history anomalies plus current anomaly",
			sensor: reading("h", models.Humidity, 50, true),
			history: models.History{"h": {
				{Value: 40, IsAnomaly: true},
				{Value: 45},
				{Value: 80, IsAnomaly: true},
			}},
			min: 40, max: 80, avg: 53.75,
			anomalies: 3,
		},
		{
			name:    "other sensors history is ignored",
			sensor:  reading("p", models.Pressure, 100, false),
			history: models.History{"q": points(1, 2, 3)},
			min:     100, max: 100, avg: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := Aggregate(tc.sensor, tc.history)
			assert.Equal(t, tc.sensor.ID, agg.SensorID)
			assert.Equal(t, tc.sensor.Type, agg.SensorType)
			assert.InDelta(t, tc.min, agg.Min, 1e-9)
			assert.InDelta(t, tc.max, agg.Max, 1e-9)
			assert.InDelta(t, tc.avg, agg.Avg, 1e-9)
			assert.Equal(t, tc.anomalies, agg.AnomalyCount)
		})
	}
}

func TestAggregateCopiesSensorMetadata(t *testing.T) {
	s := models.SensorReading{ID: "sensor-1", Type: models.Light, Value: 400, Unit: "lux", Icon: "💡"}
	agg := Aggregate(s, nil)
	assert.Equal(t, "lux", agg.Unit)
	assert.Equal(t, "💡", agg.Icon)
	assert.Zero(t, agg.RangeCoverage)
}

func TestAggregateOrderingInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		s := reading("x", models.Motion, rng.NormFloat64()*1e3, rng.IntN(2) == 0)
		n := rng.IntN(30)
		h := make([]models.HistoryPoint, n)
		for j := range h {
			h[j] = models.HistoryPoint{Value: rng.NormFloat64() * 1e3, IsAnomaly: rng.IntN(10) == 0}
		}
		agg := Aggregate(s, models.History{"x": h})
		require.LessOrEqual(t, agg.Min, agg.Avg)
		require.LessOrEqual(t, agg.Avg, agg.Max)
		require.GreaterOrEqual(t, agg.RangeCoverage, 0.0)
		require.LessOrEqual(t, agg.RangeCoverage, 100.0)
	}
}

func TestTotalAnomalies(t *testing.T) {
	sensors := []models.SensorReading{
		reading("a", models.Gas, 10, false),
		reading("b", models.Gas, 60, true),
		reading("c", models.Light, 500, true),
	}
	h := models.History{"a": {{Value: 9, IsAnomaly: true}}, "c": {{Value: 1, IsAnomaly: true}, {Value: 2}}}
	aggs := AggregateAll(sensors, h)
	require.Len(t, aggs, 3)

	sum := 0
	for _, a := range aggs {
		sum += a.AnomalyCount
	}
	assert.Equal(t, sum, TotalAnomalies(aggs))
	assert.Equal(t, 4, TotalAnomalies(aggs))
}

func TestRangeCoverage(t *testing.T) {
	assert.Equal(t, 0.0, RangeCoverage(5, 5, 5))
	assert.InDelta(t, 50.0, RangeCoverage(0, 5, 10), 1e-9)
	assert.InDelta(t, 25.0, RangeCoverage(10, 15, 30), 1e-9)
}
