package database

import (
	"context"
	"fmt"

	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS run_history (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT NOT NULL,
		campaign_id TEXT NOT NULL,
		schema_version INTEGER NOT NULL DEFAULT 1,
		platforms_json TEXT NOT NULL DEFAULT '[]',
		formats_json TEXT NOT NULL DEFAULT '{}',
		dates_json TEXT NOT NULL DEFAULT '{}',
		totals_json TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_history_campaign ON run_history (campaign_id, schema_version, created_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		campaign_id TEXT NOT NULL,
		schema_version INTEGER NOT NULL DEFAULT 1,
		platforms_json TEXT NOT NULL DEFAULT '[]',
		formats_json TEXT NOT NULL DEFAULT '{}',
		dates_json TEXT NOT NULL DEFAULT '{}',
		totals_json TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_history_campaign ON run_history (campaign_id, schema_version, created_at DESC)`,
}

// EnsureSchema cria as tabelas usadas pelo histórico caso ainda não existam
func EnsureSchema(ctx context.Context, conn Queryer, driver string) error {
	statements := sqliteSchema
	if driver == config.DriverPostgres {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}

	return nil
}
