package history

import (
	"github.com/itsatony/sensordash/internal/models"
)

// Store holds one ring per sensor id. It is owned by a single writer; callers
// read it through Snapshot, which returns copies.
type Store struct {
	capacity int
	rings    map[string]*Ring
}

func NewStore(capacity int) *Store {
	return &Store{
		capacity: capacity,
		rings:    make(map[string]*Ring),
	}
}

// Append pushes p onto the ring of sensorID, creating it on first use.
func (s *Store) Append(sensorID string, p models.HistoryPoint) {
	r, ok := s.rings[sensorID]
	if !ok {
		r = NewRing(s.capacity)
		s.rings[sensorID] = r
	}
	r.Append(p)
}

// Replace discards the window of sensorID and seeds it with points. Only the
// newest Capacity points are kept.
func (s *Store) Replace(sensorID string, points []models.HistoryPoint) {
	r := NewRing(s.capacity)
	for _, p := range points {
		r.Append(p)
	}
	s.rings[sensorID] = r
}

// Last returns the newest point of sensorID.
func (s *Store) Last(sensorID string) (models.HistoryPoint, bool) {
	r, ok := s.rings[sensorID]
	if !ok {
		return models.HistoryPoint{}, false
	}
	return r.Last()
}

// Window returns a copy of the window of sensorID, oldest first.
func (s *Store) Window(sensorID string) []models.HistoryPoint {
	r, ok := s.rings[sensorID]
	if !ok {
		return nil
	}
	return r.Points()
}

func (s *Store) Has(sensorID string) bool {
	r, ok := s.rings[sensorID]
	return ok && r.Len() > 0
}

// Retain drops the rings of every sensor not listed in ids.
func (s *Store) Retain(ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	for id := range s.rings {
		if _, ok := keep[id]; !ok {
			delete(s.rings, id)
		}
	}
}

// Snapshot copies every window into a fresh History map.
func (s *Store) Snapshot() models.History {
	out := make(models.History, len(s.rings))
	for id, r := range s.rings {
		out[id] = r.Points()
	}
	return out
}
