package history

import (
	"testing"
	"time"

	"github.com/itsatony/sensordash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(v float64) models.HistoryPoint {
	return models.HistoryPoint{Timestamp: time.Unix(int64(v), 0), Value: v}
}

func values(points []models.HistoryPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

func TestRingDropsOldest(t *testing.T) {
	r := NewRing(3)
	assert.Equal(t, 3, r.Cap())
	_, ok := r.Last()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		r.Append(point(float64(i)))
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []float64{3, 4, 5}, values(r.Points()))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 5.0, last.Value)
}

func TestRingPartiallyFilled(t *testing.T) {
	r := NewRing(24)
	r.Append(point(1))
	r.Append(point(2))
	assert.Equal(t, []float64{1, 2}, values(r.Points()))
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing(0)
	r.Append(point(1))
	r.Append(point(2))
	assert.Equal(t, []float64{2}, values(r.Points()))
}

func TestRingPointsIsACopy(t *testing.T) {
	r := NewRing(2)
	r.Append(point(1))
	pts := r.Points()
	pts[0].Value = 99
	assert.Equal(t, []float64{1}, values(r.Points()))
}

func TestStore(t *testing.T) {
	s := NewStore(2)
	s.Append("a", point(1))
	s.Append("a", point(2))
	s.Append("a", point(3))
	s.Replace("b", []models.HistoryPoint{point(7), point(8), point(9)})

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	snap := s.Snapshot()
	assert.Equal(t, []float64{2, 3}, values(snap["a"]))
	assert.Equal(t, []float64{8, 9}, values(snap["b"]))

	last, ok := s.Last("b")
	require.True(t, ok)
	assert.Equal(t, 9.0, last.Value)

	window := s.Window("b")
	assert.Equal(t, []float64{8, 9}, values(window))
	window[0].Value = 99
	assert.Equal(t, []float64{8, 9}, values(s.Window("b")))
	assert.Nil(t, s.Window("c"))

	s.Retain([]string{"b"})
	_, ok = s.Last("a")
	assert.False(t, ok)
	assert.Len(t, s.Snapshot(), 1)
}
