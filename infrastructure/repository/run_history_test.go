package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/database"
	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRunHistoryRepository(t *testing.T) (RunHistoryRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRunHistoryRepository(database.NewWithDB(db, config.DriverPostgres)), mock
}

func TestRunHistoryRepository_GetLatestByCampaign(t *testing.T) {
	repo, mock := newMockRunHistoryRepository(t)
	createdAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "run_id", "campaign_id", "schema_version",
		"platforms_json", "formats_json", "dates_json", "totals_json", "created_at",
	}).AddRow(
		int64(7), "run1", "verano", int64(2),
		`["META","GOOGLE"]`,
		`{"META":["Video"]}`,
		`{"META":{"fecha_min":"2024-01-01","fecha_max":"2024-01-10"}}`,
		`{"META":{"GASTO":1000,"IMPRESIONES":5000}}`,
		createdAt,
	)

	mock.ExpectQuery(`FROM run_history rh WHERE rh.campaign_id = \$1 AND rh.schema_version >= \$2 ORDER BY rh.created_at DESC, rh.id DESC LIMIT 1`).
		WithArgs("verano", 2).
		WillReturnRows(rows)

	snapshot, err := repo.GetLatestByCampaign("verano", domain.MinComparableSchemaVersion)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, int64(7), snapshot.ID)
	assert.Equal(t, "run1", snapshot.RunID)
	assert.Equal(t, 2, snapshot.SchemaVersion)
	assert.Equal(t, []string{"META", "GOOGLE"}, snapshot.Platforms)
	assert.Equal(t, []string{"Video"}, snapshot.Formats["META"])
	assert.Equal(t, "2024-01-01", snapshot.Dates["META"].Min)
	assert.Equal(t, 1000.0, snapshot.Totals["META"].Spend)
	assert.Equal(t, createdAt, snapshot.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunHistoryRepository_GetLatestByCampaign_NotFound(t *testing.T) {
	repo, mock := newMockRunHistoryRepository(t)

	mock.ExpectQuery(`FROM run_history rh`).
		WithArgs("verano", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	snapshot, err := repo.GetLatestByCampaign("verano", 2)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestRunHistoryRepository_Save(t *testing.T) {
	repo, mock := newMockRunHistoryRepository(t)

	snapshot := &domain.HistorySnapshot{
		RunID:         "run1",
		CampaignID:    "verano",
		SchemaVersion: domain.CurrentSnapshotSchemaVersion,
		Platforms:     []string{"META"},
		Formats:       map[string][]string{"META": {"Video"}},
		Dates:         map[string]domain.DateRange{"META": {Min: "2024-01-01", Max: "2024-01-10"}},
		Totals:        map[string]domain.PlatformTotals{"META": {Spend: 1000, Impressions: 5000}},
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO run_history (run_id,campaign_id,schema_version,platforms_json,formats_json,dates_json,totals_json,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id")).
		WithArgs(
			"run1",
			"verano",
			2,
			`["META"]`,
			`{"META":["Video"]}`,
			`{"META":{"fecha_min":"2024-01-01","fecha_max":"2024-01-10"}}`,
			`{"META":{"GASTO":1000,"IMPRESIONES":5000}}`,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.Save(snapshot))
	assert.Equal(t, int64(42), snapshot.ID)
	assert.False(t, snapshot.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunHistoryRepository_DeleteLegacyOlderThan(t *testing.T) {
	repo, mock := newMockRunHistoryRepository(t)
	before := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM run_history WHERE schema_version < $1 AND created_at < $2")).
		WithArgs(2, before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteLegacyOlderThan(before)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunHistoryRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	conn, err := database.NewConnection(ctx, config.Database{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, database.EnsureSchema(ctx, conn, conn.Driver))

	repo := NewRunHistoryRepository(conn)
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(&domain.HistorySnapshot{
		RunID: "run1", CampaignID: "verano", SchemaVersion: domain.SnapshotSchemaPerCampaign,
		Platforms: []string{"META"}, CreatedAt: base,
	}))
	require.NoError(t, repo.Save(&domain.HistorySnapshot{
		RunID: "run2", CampaignID: "verano", SchemaVersion: domain.SnapshotSchemaLegacy,
		Platforms: []string{"GOOGLE"}, CreatedAt: base.Add(time.Hour),
	}))

	snapshot, err := repo.GetLatestByCampaign("verano", domain.MinComparableSchemaVersion)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "run1", snapshot.RunID)
	assert.Equal(t, []string{"META"}, snapshot.Platforms)

	removed, err := repo.DeleteLegacyOlderThan(base.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
