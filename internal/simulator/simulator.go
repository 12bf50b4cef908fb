// Package simulator stands in for a telemetry feed: it draws current readings
// and synthetic history from the sensor catalog.
package simulator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/itsatony/sensordash/internal/models"
)

// Options tune the random draws.
type Options struct {
	HistoryPoints             int
	HistoryStep               time.Duration
	HistoryVariation          float64
	AnomalyProbability        float64
	HistoryAnomalyProbability float64
	ConnectivityProbability   float64
	// Seed makes the draws reproducible; zero seeds from the clock.
	Seed uint64
}

// DefaultOptions mirror the configuration defaults.
func DefaultOptions() Options {
	return Options{
		HistoryPoints:             24,
		HistoryStep:               time.Hour,
		HistoryVariation:          0.2,
		AnomalyProbability:        0.1,
		HistoryAnomalyProbability: 0.05,
		ConnectivityProbability:   0.95,
	}
}

// Generator produces readings for a fixed set of profiles. It is not safe for
// concurrent use; the refresh loop is its only caller.
type Generator struct {
	profiles []models.SensorProfile
	opts     Options
	rng      *rand.Rand
	now      func() time.Time
}

// New creates a generator. An empty profile list selects DefaultProfiles;
// profiles without a unit or icon take the catalog's.
func New(profiles []models.SensorProfile, opts Options) *Generator {
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	} else {
		profiles = withCatalogDefaults(profiles)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		profiles: profiles,
		opts:     opts,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:      time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// SensorID is the stable id of the profile at index i.
func SensorID(i int) string {
	return fmt.Sprintf("sensor-%d", i)
}

// Readings draws one current reading per profile. A normal reading lies within
// 30% of the range width around its centre; an anomalous one lies above the
// upper bound by up to 20 units.
func (g *Generator) Readings() []models.SensorReading {
	now := g.now()
	out := make([]models.SensorReading, 0, len(g.profiles))
	for i, p := range g.profiles {
		value := p.Mid() + (g.rng.Float64()-0.5)*p.Width()*0.3
		anomaly := g.rng.Float64() < g.opts.AnomalyProbability
		if anomaly {
			value = p.NormalMax + g.rng.Float64()*20
		}
		out = append(out, models.SensorReading{
			ID:        SensorID(i),
			Type:      p.Type,
			Value:     value,
			Unit:      p.Unit,
			Icon:      p.Icon,
			Timestamp: now,
			IsAnomaly: anomaly,
			Trend:     g.randomTrend(),
		})
	}
	return out
}

// History draws HistoryPoints samples around the value of s, spaced
// HistoryStep apart. The newest point is one step older than s itself.
func (g *Generator) History(s models.SensorReading) []models.HistoryPoint {
	n := g.opts.HistoryPoints
	points := make([]models.HistoryPoint, 0, n)
	variation := s.Value * g.opts.HistoryVariation
	for i := n; i >= 1; i-- {
		value := s.Value + (g.rng.Float64()-0.5)*variation
		points = append(points, models.HistoryPoint{
			Timestamp: s.Timestamp.Add(-time.Duration(i) * g.opts.HistoryStep),
			Value:     math.Max(0, value),
			IsAnomaly: g.rng.Float64() < g.opts.HistoryAnomalyProbability,
		})
	}
	return points
}

// Connected simulates a health check that succeeds with
// ConnectivityProbability.
func (g *Generator) Connected() bool {
	return g.rng.Float64() < g.opts.ConnectivityProbability
}

func (g *Generator) randomTrend() models.Trend {
	return []models.Trend{models.TrendUp, models.TrendDown, models.TrendStable}[g.rng.IntN(3)]
}

// TrendOf classifies the move from prev to cur; changes within tolerance are
// stable.
func TrendOf(prev, cur, tolerance float64) models.Trend {
	switch d := cur - prev; {
	case d > tolerance:
		return models.TrendUp
	case d < -tolerance:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// TrendTolerance is 1% of the normal range width of the profile matching t.
func (g *Generator) TrendTolerance(t models.SensorType) float64 {
	for _, p := range g.profiles {
		if p.Type == t {
			return p.Width() * 0.01
		}
	}
	return 0
}
