// FilePath: internal/repository/timescale/timescale.sensor_data.go
package timescale

import (
	"context"
	"fmt"
	"time"

	"github.com/itsatony/sensordash/internal/database"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const insertReadingQuery = `
	INSERT INTO sensor_readings (id, sensor_id, sensor_type, value, unit, is_anomaly, trend, anomaly_type, confidence, timestamp)
	VALUES (:id, :sensor_id, :sensor_type, :value, :unit, :is_anomaly, :trend, :anomaly_type, :confidence, :timestamp)`

const historyQuery = `
	SELECT timestamp, value, is_anomaly
	FROM (
		SELECT timestamp, value, is_anomaly
		FROM sensor_readings
		WHERE sensor_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
		LIMIT $3
	) newest
	ORDER BY timestamp ASC`

const recentReadingsQuery = `
	SELECT sensor_id, sensor_type, value, unit, is_anomaly, trend, anomaly_type, confidence, timestamp
	FROM (
		SELECT sensor_id, sensor_type, value, unit, is_anomaly, trend, anomaly_type, confidence, timestamp
		FROM sensor_readings
		ORDER BY timestamp DESC
		LIMIT $1
	) newest
	ORDER BY timestamp ASC, sensor_id ASC`

type SensorDataRepo struct {
	TimeScaleBaseRepo
	retention time.Duration
}

// archivedReading is the row shape of sensor_readings
type archivedReading struct {
	ID string `db:"id"`
	models.SensorReading
}

// NewSensorDataRepository prepares the hypertable and replaces any existing
// retention policy with one dropping chunks older than retention.
func NewSensorDataRepository(db database.DB, retention time.Duration) (*SensorDataRepo, error) {
	if retention <= 0 {
		return nil, errors.NewValidationError("retention must be positive", nil).
			WithDetails(map[string]string{"retention": retention.String()})
	}
	repo := &SensorDataRepo{TimeScaleBaseRepo: TimeScaleBaseRepo{db: db}, retention: retention}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

// retentionInterval renders d as a postgres interval literal.
func retentionInterval(d time.Duration) string {
	return fmt.Sprintf("%d seconds", int64(d/time.Second))
}

func (r *SensorDataRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id TEXT NOT NULL,
			sensor_id TEXT NOT NULL,
			sensor_type TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			is_anomaly BOOLEAN NOT NULL DEFAULT FALSE,
			trend TEXT NOT NULL DEFAULT 'stable',
			anomaly_type TEXT NOT NULL DEFAULT 'NORMAL',
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			timestamp TIMESTAMPTZ NOT NULL
		)`,
		`ALTER TABLE sensor_readings ADD COLUMN IF NOT EXISTS anomaly_type TEXT NOT NULL DEFAULT 'NORMAL'`,
		`ALTER TABLE sensor_readings ADD COLUMN IF NOT EXISTS confidence DOUBLE PRECISION NOT NULL DEFAULT 0`,
		`SELECT create_hypertable('sensor_readings', 'timestamp',
			chunk_time_interval => INTERVAL '1 day',
			if_not_exists => TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_sensor_timestamp
			ON sensor_readings(sensor_id, timestamp DESC)`,
		`SELECT remove_retention_policy('sensor_readings', if_exists => TRUE)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}

	interval := retentionInterval(r.retention)
	if _, err := r.db.GetDB().Exec(
		`SELECT add_retention_policy('sensor_readings', $1::interval)`, interval,
	); err != nil {
		return errors.NewDatabaseError("failed to set retention policy", err)
	}
	nuts.L.Infof("[TimescaleDB] Retention policy set to %s", interval)
	return nil
}

// InsertReadings archives one tick worth of readings in a single transaction
func (r *SensorDataRepo) InsertReadings(ctx context.Context, readings []models.SensorReading) error {
	if len(readings) == 0 {
		return nil
	}

	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback() // no-op after commit

	rows := make([]archivedReading, len(readings))
	for i, reading := range readings {
		if reading.AnomalyType == "" {
			reading.AnomalyType = models.AnomalyNone
		}
		rows[i] = archivedReading{ID: nuts.NID("sr", 12), SensorReading: reading}
	}
	if _, err := tx.NamedExecContext(ctx, insertReadingQuery, rows); err != nil {
		return errors.NewDatabaseError("failed to insert sensor readings", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit sensor readings", err)
	}
	return nil
}

// GetHistory returns at most limit points of sensorID since the given time, oldest first
func (r *SensorDataRepo) GetHistory(ctx context.Context, sensorID string, since time.Time, limit int) ([]models.HistoryPoint, error) {
	points := []models.HistoryPoint{}
	err := r.db.GetDB().SelectContext(ctx, &points, historyQuery, sensorID, since, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get sensor history", err)
	}
	return points, nil
}

// RecentReadings returns the newest limit readings across all sensors, oldest first
func (r *SensorDataRepo) RecentReadings(ctx context.Context, limit int) ([]models.SensorReading, error) {
	readings := []models.SensorReading{}
	if err := r.db.GetDB().SelectContext(ctx, &readings, recentReadingsQuery, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to get recent readings", err)
	}
	return readings, nil
}

func (r *SensorDataRepo) DeleteOldData(ctx context.Context, before time.Time) error {
	query := `DELETE FROM sensor_readings WHERE timestamp < $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, before)
	if err != nil {
		return errors.NewDatabaseError("failed to delete old data", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[TimescaleDB] Deleted %d old sensor readings before %v", rows, before)
	return nil
}
