package dashboard

import (
	"context"
	"sort"
	"strconv"

	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
)

const (
	DefaultRecentLimit = 100
	MaxRecentLimit     = 1000
)

// RecentReadings returns the newest limit raw readings across all sensors,
// oldest first. The archive answers when one is configured; otherwise the
// readings are rebuilt from the in-memory windows and the current set.
func (s *Service) RecentReadings(ctx context.Context, limit int) ([]models.SensorReading, error) {
	if limit < 1 || limit > MaxRecentLimit {
		return nil, errors.NewValidationError("limit out of range", nil).
			WithDetails(map[string]string{"limit": strconv.Itoa(limit), "max": strconv.Itoa(MaxRecentLimit)})
	}
	if s.archive != nil {
		return s.archive.RecentReadings(ctx, limit)
	}
	return recentFromSnapshot(s.Snapshot(), limit), nil
}

func recentFromSnapshot(snap models.Snapshot, limit int) []models.SensorReading {
	var out []models.SensorReading
	for _, r := range snap.Sensors {
		for _, p := range snap.History[r.ID] {
			out = append(out, models.SensorReading{
				ID:        r.ID,
				Type:      r.Type,
				Value:     p.Value,
				Unit:      r.Unit,
				Icon:      r.Icon,
				Timestamp: p.Timestamp,
				IsAnomaly: p.IsAnomaly,
			})
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
