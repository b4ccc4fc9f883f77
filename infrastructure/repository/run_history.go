// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/database"
	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	runHistoryTable = "run_history rh"
)

type RunHistoryRepository interface {
	// GetLatestByCampaign retorna o snapshot mais recente da campanha com versão de
	// esquema >= minSchemaVersion, ou nil quando não existe
	GetLatestByCampaign(campaignID string, minSchemaVersion int) (*domain.HistorySnapshot, error)
	Save(snapshot *domain.HistorySnapshot) error
	DeleteLegacyOlderThan(before time.Time) (int64, error)
}

type runHistoryRepository struct {
	conn *database.Connection
}

func NewRunHistoryRepository(conn *database.Connection) RunHistoryRepository {
	return &runHistoryRepository{
		conn: conn,
	}
}

func (r *runHistoryRepository) GetLatestByCampaign(campaignID string, minSchemaVersion int) (*domain.HistorySnapshot, error) {
	query, args, err := squirrel.
		Select(
			"rh.id",
			"rh.run_id",
			"rh.campaign_id",
			"rh.schema_version",
			"rh.platforms_json",
			"rh.formats_json",
			"rh.dates_json",
			"rh.totals_json",
			"rh.created_at",
		).
		From(runHistoryTable).
		Where(squirrel.Eq{"rh.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"rh.schema_version": minSchemaVersion}).
		OrderBy("rh.created_at DESC", "rh.id DESC").
		Limit(1).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		snapshot                          domain.HistorySnapshot
		platforms, formats, dates, totals string
	)

	err = r.conn.QueryRow(query, args...).Scan(
		&snapshot.ID,
		&snapshot.RunID,
		&snapshot.CampaignID,
		&snapshot.SchemaVersion,
		&platforms,
		&formats,
		&dates,
		&totals,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar histórico da campanha %s: %w", campaignID, err)
	}

	if err := decodeSnapshotPayload(&snapshot, platforms, formats, dates, totals); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *runHistoryRepository) Save(snapshot *domain.HistorySnapshot) error {
	platforms, formats, dates, totals, err := encodeSnapshotPayload(snapshot)
	if err != nil {
		return err
	}

	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert("run_history").
		Columns(
			"run_id",
			"campaign_id",
			"schema_version",
			"platforms_json",
			"formats_json",
			"dates_json",
			"totals_json",
			"created_at",
		).
		Values(
			snapshot.RunID,
			snapshot.CampaignID,
			snapshot.SchemaVersion,
			platforms,
			formats,
			dates,
			totals,
			snapshot.CreatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&snapshot.ID); err != nil {
		return fmt.Errorf("erro ao salvar histórico da execução %s: %w", snapshot.RunID, err)
	}

	return nil
}

func (r *runHistoryRepository) DeleteLegacyOlderThan(before time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete("run_history").
		Where(squirrel.Lt{"schema_version": domain.MinComparableSchemaVersion}).
		Where(squirrel.Lt{"created_at": before}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover histórico legado: %w", err)
	}

	return result.RowsAffected()
}

func encodeSnapshotPayload(snapshot *domain.HistorySnapshot) (platforms, formats, dates, totals string, err error) {
	encode := func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("erro ao serializar histórico: %w", err)
		}
		return string(b), nil
	}

	if platforms, err = encode(snapshot.Platforms); err != nil {
		return
	}
	if formats, err = encode(snapshot.Formats); err != nil {
		return
	}
	if dates, err = encode(snapshot.Dates); err != nil {
		return
	}
	totals, err = encode(snapshot.Totals)
	return
}

func decodeSnapshotPayload(snapshot *domain.HistorySnapshot, platforms, formats, dates, totals string) error {
	decode := func(raw string, v any) error {
		if raw == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(raw), v); err != nil {
			return fmt.Errorf("erro ao ler histórico %d: %w", snapshot.ID, err)
		}
		return nil
	}

	if err := decode(platforms, &snapshot.Platforms); err != nil {
		return err
	}
	if err := decode(formats, &snapshot.Formats); err != nil {
		return err
	}
	if err := decode(dates, &snapshot.Dates); err != nil {
		return err
	}
	return decode(totals, &snapshot.Totals)
}
