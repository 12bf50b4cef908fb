// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/itsatony/sensordash/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
)

// SnapshotCache shares the latest snapshot with other processes
type SnapshotCache interface {
	StoreSnapshot(ctx context.Context, snap models.Snapshot) error
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	Close() error
}

// ReadingArchive keeps every generated reading for later backfill
type ReadingArchive interface {
	InsertReadings(ctx context.Context, readings []models.SensorReading) error
	GetHistory(ctx context.Context, sensorID string, since time.Time, limit int) ([]models.HistoryPoint, error)
	RecentReadings(ctx context.Context, limit int) ([]models.SensorReading, error)
	DeleteOldData(ctx context.Context, before time.Time) error
	Close() error
}
