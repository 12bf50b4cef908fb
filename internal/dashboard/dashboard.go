// Package dashboard owns the live sensor state and the refresh cycle that
// replaces it.
package dashboard

import (
	"sync"
	"time"

	"github.com/itsatony/sensordash/internal/analytics"
	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/detector"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/history"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/itsatony/sensordash/internal/monitoring"
	"github.com/itsatony/sensordash/internal/notify"
	"github.com/itsatony/sensordash/internal/repository"
	"github.com/itsatony/sensordash/internal/simulator"
	nuts "github.com/vaudience/go-nuts"
)

// Events emitted by the service.
const (
	EventRefreshed   = "sensors.refreshed"
	EventAnomaly     = "anomaly.detected"
	EventFilterReset = "filter.reset"
)

// Options control the refresh cycle.
type Options struct {
	RefreshInterval time.Duration
	HistoryMode     string
	HistoryPoints   int
	HistoryStep     time.Duration
}

// OptionsFromConfig maps the simulator section onto Options.
func OptionsFromConfig(cfg config.SimulatorConfig) Options {
	return Options{
		RefreshInterval: cfg.RefreshInterval,
		HistoryMode:     cfg.HistoryMode,
		HistoryPoints:   cfg.HistoryPoints,
		HistoryStep:     cfg.HistoryStep,
	}
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier.Add(n) }
}

func WithMonitoring(m *monitoring.Service) Option {
	return func(s *Service) { s.monitoring = m }
}

func WithSnapshotCache(c repository.SnapshotCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithArchive(a repository.ReadingArchive) Option {
	return func(s *Service) { s.archive = a }
}

func WithRecent(r *notify.Recent) Option {
	return func(s *Service) { s.recent = r }
}

func WithDetector(d *detector.Detector) Option {
	return func(s *Service) { s.detector = d }
}

// WithClock replaces the time source of LastUpdated and notifications.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service holds the latest snapshot. Ticks are serialised by tickMu and never
// overlap; readers only ever see whole snapshots swapped in under mu.
type Service struct {
	generator  *simulator.Generator
	history    *history.Store
	detector   *detector.Detector
	notifier   *notify.Multi
	recent     *notify.Recent
	monitoring *monitoring.Service
	cache      repository.SnapshotCache
	archive    repository.ReadingArchive
	events     *nuts.EventEmitter
	opts       Options
	now        func() time.Time

	tickMu sync.Mutex

	mu       sync.RWMutex
	snapshot models.Snapshot
	loaded   bool
}

// New creates a dashboard service around gen.
func New(gen *simulator.Generator, opts Options, options ...Option) *Service {
	if opts.HistoryPoints < 1 {
		opts.HistoryPoints = 24
	}
	if opts.HistoryStep <= 0 {
		opts.HistoryStep = time.Hour
	}
	if opts.HistoryMode == "" {
		opts.HistoryMode = config.HistoryModeRolling
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 10 * time.Second
	}

	s := &Service{
		generator: gen,
		history:   history.NewStore(opts.HistoryPoints),
		detector:  detector.New(detector.DefaultThresholds()),
		notifier:  notify.NewMulti(notify.LogNotifier{}),
		events:    nuts.NewEventEmitter(),
		opts:      opts,
		now:       time.Now,
		snapshot:  models.Snapshot{Filter: models.FilterAll, Connected: true},
	}
	for _, o := range options {
		o(s)
	}
	if s.recent == nil {
		s.recent = notify.NewRecent(20)
	}
	s.notifier.Add(s.recent)
	return s
}

// On registers a handler for one of the Event* names.
func (s *Service) On(event, handlerID string, handler func(args ...interface{})) {
	s.events.On(event, handlerID, handler)
}

// Snapshot returns the latest state. Its slices and map are shared and must
// not be modified.
func (s *Service) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loaded reports whether the initial load has completed.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// SelectedFilter returns the current filter selection.
func (s *Service) SelectedFilter() string {
	return s.Snapshot().Filter
}

// SelectFilter changes the selection. It accepts models.FilterAll or a type
// present in the current sensor set.
func (s *Service) SelectFilter(filter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filter != models.FilterAll && !analytics.HasType(s.snapshot.Sensors, filter) {
		return errors.NewValidationError("unknown sensor type", nil).
			WithDetails(map[string]string{"filter": filter})
	}
	next := s.snapshot
	next.Filter = filter
	s.snapshot = next
	nuts.L.Infof("[Dashboard] Filter set to %s", filter)
	return nil
}

// View projects the latest snapshot. An empty filter uses the current selection.
func (s *Service) View(filter string) models.DashboardView {
	snap := s.Snapshot()
	if filter == "" {
		filter = snap.Filter
	}
	return analytics.Project(snap, filter)
}

// Analytics returns the per-sensor aggregates of the latest snapshot.
func (s *Service) Analytics() models.AnalyticsSummary {
	snap := s.Snapshot()
	aggregates := analytics.AggregateAll(snap.Sensors, snap.History)
	return models.AnalyticsSummary{
		Analytics:      aggregates,
		TotalAnomalies: analytics.TotalAnomalies(aggregates),
	}
}

// Sensor looks up one current reading by id.
func (s *Service) Sensor(id string) (models.SensorReading, error) {
	for _, r := range s.Snapshot().Sensors {
		if r.ID == id {
			return r, nil
		}
	}
	return models.SensorReading{}, errors.NewNotFoundError("sensor not found", nil).
		WithDetails(map[string]string{"sensor_id": id})
}

// History returns the reading and history window of one sensor.
func (s *Service) History(id string) (models.SensorReading, []models.HistoryPoint, error) {
	snap := s.Snapshot()
	for _, r := range snap.Sensors {
		if r.ID == id {
			return r, snap.History[id], nil
		}
	}
	return models.SensorReading{}, nil, errors.NewNotFoundError("sensor not found", nil).
		WithDetails(map[string]string{"sensor_id": id})
}

// Notifications lists the most recent alerts, newest first.
func (s *Service) Notifications() []models.Notification {
	return s.recent.List()
}
