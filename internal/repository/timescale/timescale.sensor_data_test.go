package timescale

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/itsatony/sensordash/internal/database"
	"github.com/itsatony/sensordash/internal/errors"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SensorDataRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SensorDataRepo{TimeScaleBaseRepo: TimeScaleBaseRepo{db: database.Wrap(sqlx.NewDb(db, "postgres"))}}, mock
}

func TestNewSensorDataRepository(t *testing.T) {
	testCases := []struct {
		name         string
		retention    time.Duration
		wantInterval string
		wantErr      bool
	}{
		{name: "default retention", retention: 30 * time.Hour, wantInterval: "108000 seconds"},
		{name: "configured retention", retention: 7 * 24 * time.Hour, wantInterval: "604800 seconds"},
		{name: "zero retention", retention: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			t.Cleanup(func() { sqlDB.Close() })
			db := database.Wrap(sqlx.NewDb(sqlDB, "postgres"))

			if !tc.wantErr {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS sensor_readings").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("ADD COLUMN IF NOT EXISTS anomaly_type").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("ADD COLUMN IF NOT EXISTS confidence").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("create_hypertable").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("remove_retention_policy").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta("add_retention_policy('sensor_readings', $1::interval)")).
					WithArgs(tc.wantInterval).
					WillReturnResult(sqlmock.NewResult(0, 0))
			}

			repo, err := NewSensorDataRepository(db, tc.retention)
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, repo)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.retention, repo.retention)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsertReadings(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	readings := []models.SensorReading{
		{ID: "sensor-0", Type: models.Gas, Value: 12, Unit: "ppm", Timestamp: ts, Trend: models.TrendUp},
		{ID: "sensor-1", Type: models.Light, Value: 450, Unit: "lux", Timestamp: ts, IsAnomaly: true, Trend: models.TrendStable,
			AnomalyType: models.AnomalyOutOfRange, Confidence: 0.25},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sensor_readings").
		WithArgs(
			sqlmock.AnyArg(), "sensor-0", "Gas", 12.0, "ppm", false, "up", "NORMAL", 0.0, ts,
			sqlmock.AnyArg(), "sensor-1", "Light", 450.0, "lux", true, "stable", "OUT_OF_RANGE", 0.25, ts,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.InsertReadings(context.Background(), readings))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReadingsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)
	require.NoError(t, repo.InsertReadings(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistory(t *testing.T) {
	repo, mock := newMockRepo(t)
	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"timestamp", "value", "is_anomaly"}).
		AddRow(since.Add(time.Hour), 1.5, false).
		AddRow(since.Add(2*time.Hour), 2.5, true)

	mock.ExpectQuery("SELECT timestamp, value, is_anomaly").
		WithArgs("sensor-0", since, 24).
		WillReturnRows(rows)

	points, err := repo.GetHistory(context.Background(), "sensor-0", since, 24)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 1.5, points[0].Value)
	assert.True(t, points[1].IsAnomaly)
	assert.True(t, points[0].Timestamp.Before(points[1].Timestamp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistoryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT timestamp").WillReturnError(assert.AnError)

	_, err := repo.GetHistory(context.Background(), "sensor-0", time.Now(), 24)
	require.Error(t, err)
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeDatabase, apiErr.Type)
}

func TestRecentReadings(t *testing.T) {
	repo, mock := newMockRepo(t)
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"sensor_id", "sensor_type", "value", "unit", "is_anomaly", "trend", "anomaly_type", "confidence", "timestamp"}).
		AddRow("sensor-0", "Gas", 12.5, "ppm", false, "up", "NORMAL", 0.0, ts).
		AddRow("sensor-4", "Light", 820.0, "lux", true, "up", "OUT_OF_RANGE", 0.25, ts.Add(10*time.Second))

	mock.ExpectQuery("SELECT sensor_id, sensor_type, value").WithArgs(100).WillReturnRows(rows)

	readings, err := repo.RecentReadings(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "sensor-0", readings[0].ID)
	assert.Equal(t, models.Gas, readings[0].Type)
	assert.Equal(t, models.AnomalyOutOfRange, readings[1].AnomalyType)
	assert.InDelta(t, 0.25, readings[1].Confidence, 1e-9)
	assert.True(t, readings[1].IsAnomaly)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentReadingsError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT sensor_id").WillReturnError(assert.AnError)

	_, err := repo.RecentReadings(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPing(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	repo := &SensorDataRepo{TimeScaleBaseRepo: TimeScaleBaseRepo{db: database.Wrap(sqlx.NewDb(sqlDB, "postgres"))}}

	mock.ExpectPing().WillReturnError(assert.AnError)
	err = repo.Ping(context.Background())
	require.Error(t, err)
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeDatabase, apiErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOldData(t *testing.T) {
	repo, mock := newMockRepo(t)
	before := time.Now()
	mock.ExpectExec("DELETE FROM sensor_readings").WithArgs(before).WillReturnResult(sqlmock.NewResult(0, 7))

	require.NoError(t, repo.DeleteOldData(context.Background(), before))
	assert.NoError(t, mock.ExpectationsWereMet())
}
