// Package history keeps a bounded rolling window of samples per sensor.
package history

import (
	"github.com/itsatony/sensordash/internal/models"
)

// Ring is a fixed-capacity buffer of history points. Appending to a full ring
// drops the oldest point.
type Ring struct {
	points []models.HistoryPoint
	start  int
	size   int
}

// NewRing creates an empty ring holding at most capacity points.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{points: make([]models.HistoryPoint, capacity)}
}

func (r *Ring) Cap() int { return len(r.points) }

func (r *Ring) Len() int { return r.size }

// Append adds p as the newest point.
func (r *Ring) Append(p models.HistoryPoint) {
	end := (r.start + r.size) % len(r.points)
	r.points[end] = p
	if r.size < len(r.points) {
		r.size++
		return
	}
	r.start = (r.start + 1) % len(r.points)
}

// Last returns the newest point.
func (r *Ring) Last() (models.HistoryPoint, bool) {
	if r.size == 0 {
		return models.HistoryPoint{}, false
	}
	return r.points[(r.start+r.size-1)%len(r.points)], true
}

// Points returns a copy of the contents, oldest first.
func (r *Ring) Points() []models.HistoryPoint {
	out := make([]models.HistoryPoint, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.points[(r.start+i)%len(r.points)]
	}
	return out
}
