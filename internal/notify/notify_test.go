package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itsatony/sensordash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	got []models.Notification
	err error
}

func (c *captureNotifier) Notify(_ context.Context, n models.Notification) error {
	c.got = append(c.got, n)
	return c.err
}

func TestAnomalyAlert(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sensors := []models.SensorReading{
		{ID: "sensor-0", Type: models.Gas, IsAnomaly: true},
		{ID: "sensor-1", Type: models.Temperature},
		{ID: "sensor-2", Type: models.Light, IsAnomaly: true},
	}

	n, ok := AnomalyAlert(sensors, at)
	require.True(t, ok)
	assert.Equal(t, AnomalyTitle, n.Title)
	assert.Equal(t, "New anomaly detected in Gas, Light", n.Description)
	assert.Equal(t, models.SeverityDestructive, n.Severity)
	assert.Equal(t, []models.SensorType{models.Gas, models.Light}, n.SensorTypes)
	assert.Equal(t, at, n.CreatedAt)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, models.AnomalyOutOfRange, n.AnomalyType, "unclassified readings default to out of range")
	assert.Zero(t, n.Confidence)
}

func TestAnomalyAlertCarriesSeverestClassification(t *testing.T) {
	testCases := []struct {
		name           string
		sensors        []models.SensorReading
		wantType       models.AnomalyType
		wantConfidence float64
	}{
		{
			name: "critical outranks trend",
			sensors: []models.SensorReading{
				{Type: models.Light, IsAnomaly: true, AnomalyType: models.AnomalyTrend, Confidence: 0.5},
				{Type: models.Gas, IsAnomaly: true, AnomalyType: models.AnomalyCritical, Confidence: 0.25},
			},
			wantType:       models.AnomalyCritical,
			wantConfidence: 0.5,
		},
		{
			name: "non-anomalous readings are ignored",
			sensors: []models.SensorReading{
				{Type: models.Gas, AnomalyType: models.AnomalyExtreme, Confidence: 0.75},
				{Type: models.Motion, IsAnomaly: true, AnomalyType: models.AnomalyOutOfRange, Confidence: 0.25},
			},
			wantType:       models.AnomalyOutOfRange,
			wantConfidence: 0.25,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, ok := AnomalyAlert(tc.sensors, time.Now())
			require.True(t, ok)
			assert.Equal(t, tc.wantType, n.AnomalyType)
			assert.InDelta(t, tc.wantConfidence, n.Confidence, 1e-9)
		})
	}
}

func TestAnomalyAlertWithoutAnomalies(t *testing.T) {
	_, ok := AnomalyAlert([]models.SensorReading{{ID: "sensor-0", Type: models.Gas}}, time.Now())
	assert.False(t, ok)

	_, ok = AnomalyAlert(nil, time.Now())
	assert.False(t, ok)
}

func TestMultiContinuesAfterFailure(t *testing.T) {
	failing := &captureNotifier{err: errors.New("broker down")}
	ok := &captureNotifier{}
	m := NewMulti(failing)
	m.Add(ok)

	err := m.Notify(context.Background(), models.Notification{ID: "n1"})
	assert.EqualError(t, err, "broker down")
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1)
}

func TestRecentKeepsNewestFirst(t *testing.T) {
	r := NewRecent(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Notify(ctx, models.Notification{ID: id}))
	}

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	list[0].ID = "mutated"
	assert.Equal(t, "c", r.List()[0].ID)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), models.Notification{Title: "x", Severity: models.SeverityDestructive}))
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), models.Notification{Title: "y"}))
}
