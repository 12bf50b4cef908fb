// Package detector classifies readings with level, range, trend and velocity
// rules evaluated over the recent window of each sensor.
package detector

import (
	"time"

	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/models"
)

// Method names one detection rule.
type Method string

const (
	MethodLevel    Method = "level"
	MethodRange    Method = "range"
	MethodTrend    Method = "trend"
	MethodVelocity Method = "velocity"
)

const methodCount = 4

// Thresholds parameterise the rules. Absolute levels only apply to LevelType.
type Thresholds struct {
	LevelType            models.SensorType
	Warning              float64
	Critical             float64
	Extreme              float64
	TrendWindow          int
	TrendRise            float64
	ConsecutiveIncreases int
	VelocityWindow       int
	VelocityPerMinute    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LevelType:            models.Gas,
		Warning:              300,
		Critical:             500,
		Extreme:              1000,
		TrendWindow:          5,
		TrendRise:            0.1,
		ConsecutiveIncreases: 3,
		VelocityWindow:       3,
		VelocityPerMinute:    50,
	}
}

// ThresholdsFromConfig maps the detector section onto Thresholds.
func ThresholdsFromConfig(cfg config.DetectorConfig) Thresholds {
	return Thresholds{
		LevelType:            models.SensorType(cfg.LevelSensorType),
		Warning:              cfg.Warning,
		Critical:             cfg.Critical,
		Extreme:              cfg.Extreme,
		TrendWindow:          cfg.TrendWindow,
		TrendRise:            cfg.TrendRise,
		ConsecutiveIncreases: cfg.ConsecutiveIncreases,
		VelocityWindow:       cfg.VelocityWindow,
		VelocityPerMinute:    cfg.VelocityPerMinute,
	}
}

// Result is the classification of one reading.
type Result struct {
	Type       models.AnomalyType
	Confidence float64
	Hits       []Method
}

// Detector is stateless; the caller supplies each sensor's window.
type Detector struct {
	t Thresholds
}

func New(t Thresholds) *Detector {
	if t.TrendWindow < 3 {
		t.TrendWindow = 3
	}
	if t.VelocityWindow < 1 {
		t.VelocityWindow = 1
	}
	return &Detector{t: t}
}

type sample struct {
	at    time.Time
	value float64
}

// Classify evaluates every rule for r. window holds the points preceding r,
// oldest first.
func (d *Detector) Classify(r models.SensorReading, window []models.HistoryPoint) Result {
	samples := make([]sample, 0, len(window)+1)
	for _, p := range window {
		samples = append(samples, sample{at: p.Timestamp, value: p.Value})
	}
	samples = append(samples, sample{at: r.Timestamp, value: r.Value})

	level := d.level(r)
	rising := d.rising(samples)
	fast := d.fast(samples)

	res := Result{Type: models.AnomalyNone}
	if level != models.AnomalyNone {
		res.Hits = append(res.Hits, MethodLevel)
	}
	if r.IsAnomaly {
		res.Hits = append(res.Hits, MethodRange)
	}
	if rising {
		res.Hits = append(res.Hits, MethodTrend)
	}
	if fast {
		res.Hits = append(res.Hits, MethodVelocity)
	}
	res.Confidence = float64(len(res.Hits)) / methodCount

	switch {
	case level == models.AnomalyExtreme, level == models.AnomalyCritical:
		res.Type = level
	case rising:
		res.Type = models.AnomalyTrend
	case fast:
		res.Type = models.AnomalyHighVelocity
	case level == models.AnomalyWarning:
		res.Type = level
	case r.IsAnomaly:
		res.Type = models.AnomalyOutOfRange
	}
	return res
}

func (d *Detector) level(r models.SensorReading) models.AnomalyType {
	if r.Type != d.t.LevelType {
		return models.AnomalyNone
	}
	switch {
	case r.Value >= d.t.Extreme:
		return models.AnomalyExtreme
	case r.Value >= d.t.Critical:
		return models.AnomalyCritical
	case r.Value >= d.t.Warning:
		return models.AnomalyWarning
	default:
		return models.AnomalyNone
	}
}

// rising reports whether the newest samples climbed ConsecutiveIncreases steps
// in a row, or by at least TrendRise across the last three samples.
func (d *Detector) rising(samples []sample) bool {
	if len(samples) < d.t.TrendWindow {
		return false
	}
	tail := samples[max(0, len(samples)-d.t.TrendWindow-1):]

	run := 0
	for i := 1; i < len(tail); i++ {
		if tail[i].value > tail[i-1].value {
			run++
		} else {
			run = 0
		}
	}
	if run >= d.t.ConsecutiveIncreases {
		return true
	}

	first, last := tail[len(tail)-3].value, tail[len(tail)-1].value
	return first > 0 && (last-first)/first >= d.t.TrendRise
}

// fast reports whether the change per minute between the oldest and newest
// sample of the velocity window exceeds VelocityPerMinute.
func (d *Detector) fast(samples []sample) bool {
	if len(samples) < 2 {
		return false
	}
	tail := samples[max(0, len(samples)-d.t.VelocityWindow-1):]
	first, last := tail[0], tail[len(tail)-1]

	minutes := last.at.Sub(first.at).Minutes()
	if minutes <= 0 {
		return false
	}
	return (last.value-first.value)/minutes > d.t.VelocityPerMinute
}
