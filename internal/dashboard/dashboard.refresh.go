package dashboard

import (
	"context"
	"time"

	"github.com/itsatony/sensordash/internal/analytics"
	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/itsatony/sensordash/internal/monitoring"
	"github.com/itsatony/sensordash/internal/notify"
	"github.com/itsatony/sensordash/internal/simulator"
	nuts "github.com/vaudience/go-nuts"
)

// Load draws the first sensor set and seeds every history window: from the
// cached snapshot of a previous run, then the archive, then the generator.
// The cached filter and tick count carry over. Load does not raise alerts.
func (s *Service) Load(ctx context.Context) models.Snapshot {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	cached, warm := s.warmStart(ctx)

	readings := s.generator.Readings()
	for _, r := range readings {
		s.seedHistory(ctx, r, cached.History[r.ID])
	}
	s.history.Retain(sensorIDs(readings))
	s.classify(readings)

	if warm {
		s.mu.Lock()
		s.snapshot.Filter = cached.Filter
		s.snapshot.Tick = cached.Tick
		s.mu.Unlock()
	}

	snap := s.publish(readings, true)
	s.persist(ctx, snap)
	nuts.L.Infof("[Dashboard] Initial load: %d sensors, history mode %s, tick %d", len(readings), s.opts.HistoryMode, snap.Tick)
	return snap
}

// Refresh runs one tick: new readings, new history, classification,
// connectivity, filter revalidation and anomaly alerts. Concurrent calls queue
// behind each other.
func (s *Service) Refresh(ctx context.Context) models.Snapshot {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	started := time.Now()
	prev := s.Snapshot().Sensors

	var readings []models.SensorReading
	if s.opts.HistoryMode == config.HistoryModeRedraw {
		readings = s.generator.Readings()
		for _, r := range readings {
			s.history.Replace(r.ID, s.generator.History(r))
		}
	} else {
		readings = s.roll(ctx, prev)
	}
	s.history.Retain(sensorIDs(readings))
	s.classify(readings)

	snap := s.publish(readings, s.generator.Connected())

	if alert, ok := notify.AnomalyAlert(readings, snap.LastUpdated); ok {
		if err := s.notifier.Notify(ctx, alert); err != nil {
			nuts.L.Errorf("[Dashboard] Failed to deliver anomaly alert: %v", err)
		}
		s.events.Emit(EventAnomaly, alert)
	}

	s.persist(ctx, snap)

	if s.monitoring != nil {
		aggregates := analytics.AggregateAll(snap.Sensors, snap.History)
		s.monitoring.ObserveRefresh(monitoring.RefreshStats{
			Took:            time.Since(started),
			Sensors:         len(snap.Sensors),
			Anomalous:       len(analytics.AnomalousTypes(snap.Sensors)),
			WindowAnomalies: analytics.TotalAnomalies(aggregates),
			Connected:       snap.Connected,
		})
	}
	s.events.Emit(EventRefreshed, snap.Tick, len(snap.Sensors))
	return snap
}

// Run loads the initial state if needed and refreshes on every interval until
// ctx is done. The ticker is stopped before Run returns.
func (s *Service) Run(ctx context.Context) {
	if !s.Loaded() {
		s.Load(ctx)
	}

	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	nuts.L.Infof("[Dashboard] Refreshing every %s", s.opts.RefreshInterval)
	for {
		select {
		case <-ctx.Done():
			nuts.L.Infof("[Dashboard] Refresh loop stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// roll pushes the previous readings onto their windows and derives each new
// trend from the newest point of its window.
func (s *Service) roll(ctx context.Context, prev []models.SensorReading) []models.SensorReading {
	for _, p := range prev {
		s.history.Append(p.ID, models.HistoryPoint{
			Timestamp: p.Timestamp,
			Value:     p.Value,
			IsAnomaly: p.IsAnomaly,
		})
	}

	readings := s.generator.Readings()
	for i, r := range readings {
		last, ok := s.history.Last(r.ID)
		if !ok {
			s.seedHistory(ctx, r, nil)
			continue
		}
		readings[i].Trend = simulator.TrendOf(last.Value, r.Value, s.generator.TrendTolerance(r.Type))
	}
	return readings
}

// seedHistory fills the window of a sensor that has none. In rolling mode the
// cached points and then the archive are tried before the generator.
func (s *Service) seedHistory(ctx context.Context, r models.SensorReading, cached []models.HistoryPoint) {
	if s.opts.HistoryMode == config.HistoryModeRolling {
		if points := pointsBefore(cached, r.Timestamp); len(points) > 0 {
			s.history.Replace(r.ID, points)
			return
		}
		if s.archive != nil {
			window := time.Duration(s.opts.HistoryPoints) * s.opts.HistoryStep
			points, err := s.archive.GetHistory(ctx, r.ID, r.Timestamp.Add(-window), s.opts.HistoryPoints)
			if err != nil {
				nuts.L.Warnf("[Dashboard] History backfill for %s failed, generating instead: %v", r.ID, err)
			} else if points = pointsBefore(points, r.Timestamp); len(points) > 0 {
				s.history.Replace(r.ID, points)
				return
			}
		}
	}
	s.history.Replace(r.ID, s.generator.History(r))
}

// warmStart reads the snapshot a previous process left in the cache.
func (s *Service) warmStart(ctx context.Context) (models.Snapshot, bool) {
	if s.cache == nil {
		return models.Snapshot{}, false
	}
	cached, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		nuts.L.Infof("[Dashboard] No cached snapshot to resume from: %v", err)
		return models.Snapshot{}, false
	}
	nuts.L.Infof("[Dashboard] Resuming from cached snapshot at tick %d", cached.Tick)
	return *cached, true
}

// classify runs the detector over every reading and its current window.
func (s *Service) classify(readings []models.SensorReading) {
	for i, r := range readings {
		res := s.detector.Classify(r, s.history.Window(r.ID))
		readings[i].AnomalyType = res.Type
		readings[i].Confidence = res.Confidence
	}
}

// publish swaps in a new snapshot. The selected filter is read and revalidated
// under the same lock so a concurrent SelectFilter is never lost.
func (s *Service) publish(readings []models.SensorReading, connected bool) models.Snapshot {
	hist := s.history.Snapshot()

	s.mu.Lock()
	selected := s.snapshot.Filter
	if selected == "" {
		selected = models.FilterAll
	}
	filter := analytics.ResolveFilter(readings, selected)
	snap := models.Snapshot{
		Sensors:     readings,
		History:     hist,
		LastUpdated: s.now(),
		Connected:   connected,
		Filter:      filter,
		Tick:        s.snapshot.Tick + 1,
	}
	s.snapshot = snap
	s.loaded = true
	s.mu.Unlock()

	if filter != selected {
		nuts.L.Warnf("[Dashboard] Filter %s no longer matches any sensor, reset to %s", selected, filter)
		s.events.Emit(EventFilterReset, selected, filter)
	}
	return snap
}

// persist hands the snapshot to the optional cache and archive. Failures are
// logged; the in-memory state stays authoritative.
func (s *Service) persist(ctx context.Context, snap models.Snapshot) {
	if s.cache != nil {
		if err := s.cache.StoreSnapshot(ctx, snap); err != nil {
			nuts.L.Warnf("[Dashboard] Failed to cache snapshot: %v", err)
		}
	}
	if s.archive != nil {
		if err := s.archive.InsertReadings(ctx, snap.Sensors); err != nil {
			nuts.L.Warnf("[Dashboard] Failed to archive readings: %v", err)
		}
	}
}

// pointsBefore keeps the points strictly older than t.
func pointsBefore(points []models.HistoryPoint, t time.Time) []models.HistoryPoint {
	out := make([]models.HistoryPoint, 0, len(points))
	for _, p := range points {
		if p.Timestamp.Before(t) {
			out = append(out, p)
		}
	}
	return out
}

func sensorIDs(readings []models.SensorReading) []string {
	ids := make([]string, len(readings))
	for i, r := range readings {
		ids[i] = r.ID
	}
	return ids
}
