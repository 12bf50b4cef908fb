// Package notify builds anomaly alerts and fans them out to sinks.
package notify

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/itsatony/sensordash/internal/analytics"
	"github.com/itsatony/sensordash/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const AnomalyTitle = "Anomaly Detected"

// Notifier delivers a notification to one sink.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// AnomalyAlert builds the alert for a freshly generated sensor set. It returns
// false when no sensor is anomalous. The alert carries the most severe
// anomaly type and the highest confidence among the anomalous sensors.
func AnomalyAlert(sensors []models.SensorReading, at time.Time) (models.Notification, bool) {
	types := analytics.AnomalousTypes(sensors)
	if len(types) == 0 {
		return models.Notification{}, false
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	kind := models.AnomalyOutOfRange
	confidence := 0.0
	for _, s := range sensors {
		if !s.IsAnomaly {
			continue
		}
		if s.AnomalyType.Outranks(kind) {
			kind = s.AnomalyType
		}
		confidence = math.Max(confidence, s.Confidence)
	}

	return models.Notification{
		ID:          nuts.NID("ntf", 12),
		Title:       AnomalyTitle,
		Description: "New anomaly detected in " + strings.Join(names, ", "),
		Severity:    models.SeverityDestructive,
		SensorTypes: types,
		AnomalyType: kind,
		Confidence:  confidence,
		CreatedAt:   at,
	}, true
}

// Multi delivers to every sink. A failing sink is logged and does not stop
// delivery to the others.
type Multi struct {
	sinks []Notifier
}

func NewMulti(sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks}
}

// Add registers another sink.
func (m *Multi) Add(n Notifier) {
	m.sinks = append(m.sinks, n)
}

func (m *Multi) Notify(ctx context.Context, n models.Notification) error {
	var firstErr error
	for _, sink := range m.sinks {
		if err := sink.Notify(ctx, n); err != nil {
			nuts.L.Warnf("[Notify] Sink %T failed for %s: %v", sink, n.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// LogNotifier writes alerts to the service log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n models.Notification) error {
	if n.Severity == models.SeverityDestructive {
		nuts.L.Warnf("[Notify] %s: %s", n.Title, n.Description)
		return nil
	}
	nuts.L.Infof("[Notify] %s: %s", n.Title, n.Description)
	return nil
}

// Recent keeps the latest alerts in memory, newest first.
type Recent struct {
	mu    sync.RWMutex
	max   int
	items []models.Notification
}

func NewRecent(max int) *Recent {
	if max < 1 {
		max = 1
	}
	return &Recent{max: max}
}

func (r *Recent) Notify(_ context.Context, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]models.Notification, 0, r.max)
	items = append(items, n)
	for _, old := range r.items {
		if len(items) == r.max {
			break
		}
		items = append(items, old)
	}
	r.items = items
	return nil
}

// List returns a copy of the stored alerts, newest first.
func (r *Recent) List() []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Notification, len(r.items))
	copy(out, r.items)
	return out
}
