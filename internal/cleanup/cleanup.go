package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/itsatony/sensordash/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// EventArchivePruned carries the cutoff, RFC3339 formatted.
const EventArchivePruned = "archive.pruned"

// CleanupService prunes archived readings older than the retention window
type CleanupService struct {
	archive   repository.ReadingArchive
	retention time.Duration
	interval  time.Duration
	events    *nuts.EventEmitter
	now       func() time.Time
}

// New creates a new CleanupService
func New(archive repository.ReadingArchive, retention, interval time.Duration) *CleanupService {
	return &CleanupService{
		archive:   archive,
		retention: retention,
		interval:  interval,
		events:    nuts.NewEventEmitter(),
		now:       time.Now,
	}
}

// PruneArchive deletes every archived reading older than the retention window
func (s *CleanupService) PruneArchive(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	if err := s.archive.DeleteOldData(ctx, cutoff); err != nil {
		return fmt.Errorf("failed to prune archive before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	// Emit event after successful deletion
	s.events.Emit(EventArchivePruned, cutoff.Format(time.RFC3339))
	return nil
}

// Run prunes once per interval until ctx is done
func (s *CleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PruneArchive(ctx); err != nil {
				nuts.L.Errorf("[Cleanup] %v", err)
			}
		}
	}
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
