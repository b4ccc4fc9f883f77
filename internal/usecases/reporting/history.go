package reporting

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/repository"
	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// maxStartDelayDays é o atraso tolerado no início dos dados de uma plataforma
	maxStartDelayDays = 3
	// spendDropThresholdPct é a queda de gasto a partir da qual se alerta
	spendDropThresholdPct = -50.0

	alertDateLayout = "02/01/2006"
)

// HistoryComparator compara a execução atual com o último snapshot comparável da campanha
type HistoryComparator struct {
	repo    repository.RunHistoryRepository
	printer *message.Printer
	now     func() time.Time
}

func NewHistoryComparator(repo repository.RunHistoryRepository) *HistoryComparator {
	return &HistoryComparator{
		repo:    repo,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// GetLastSnapshot retorna o snapshot mais recente da campanha que pode servir de
// base. Snapshots legados nunca são retornados.
func (h *HistoryComparator) GetLastSnapshot(campaignID string) (*domain.HistorySnapshot, error) {
	snapshot, err := h.repo.GetLatestByCampaign(campaignID, domain.MinComparableSchemaVersion)
	if err != nil {
		return nil, NewHistoryError(ErrHistoryRead, campaignID, err)
	}

	if !snapshot.IsComparable() {
		return nil, nil
	}

	return snapshot, nil
}

// SaveSnapshot grava o resumo da execução para a próxima comparação
func (h *HistoryComparator) SaveSnapshot(campaignID, runID string, platforms []domain.Platform, rows []domain.ReportRow) error {
	snapshot := h.BuildSnapshot(campaignID, runID, platforms, rows)

	if err := h.repo.Save(snapshot); err != nil {
		return NewHistoryError(ErrHistoryWrite, campaignID, err)
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"run_id":      runID,
		"platforms":   snapshot.Platforms,
	}).Info("Histórico da execução salvo")

	return nil
}

// BuildSnapshot resume plataformas, formatos, intervalo de datas e totais por plataforma
func (h *HistoryComparator) BuildSnapshot(campaignID, runID string, platforms []domain.Platform, rows []domain.ReportRow) *domain.HistorySnapshot {
	snapshot := &domain.HistorySnapshot{
		RunID:         runID,
		CampaignID:    campaignID,
		SchemaVersion: domain.CurrentSnapshotSchemaVersion,
		Platforms:     make([]string, 0, len(platforms)),
		Formats:       make(map[string][]string),
		Dates:         make(map[string]domain.DateRange),
		Totals:        make(map[string]domain.PlatformTotals),
		CreatedAt:     h.now().UTC(),
	}

	seen := make(map[domain.Platform]bool)
	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		snapshot.Platforms = append(snapshot.Platforms, string(p))
	}

	for platform, formats := range formatsByPlatform(rows) {
		snapshot.Formats[platform] = sortedKeys(formats)
	}

	for platform, r := range dateRangesByPlatform(rows) {
		snapshot.Dates[platform] = domain.DateRange{
			Min: r.min.Format(domain.SnapshotDateLayout),
			Max: r.max.Format(domain.SnapshotDateLayout),
		}
	}

	for platform, totals := range totalsByPlatform(rows) {
		snapshot.Totals[platform] = domain.PlatformTotals{
			Spend:       utils.RoundWithTwoDecimalPlace(totals.Spend),
			Impressions: utils.RoundWithTwoDecimalPlace(totals.Impressions),
		}
	}

	return snapshot
}

// CheckMissingPlatforms alerta plataformas da execução anterior que não vieram hoje
func (h *HistoryComparator) CheckMissingPlatforms(previous *domain.HistorySnapshot, current []domain.Platform) []domain.Alert {
	var alerts []domain.Alert
	if !previous.IsComparable() {
		return alerts
	}

	present := make(map[string]bool, len(current))
	for _, p := range current {
		present[string(p)] = true
	}

	reported := make(map[string]bool)
	for _, p := range previous.Platforms {
		if present[p] || reported[p] {
			continue
		}
		reported[p] = true
		alerts = append(alerts, historyAlert(domain.SeverityCritical,
			fmt.Sprintf("PLATAFORMA FALTANTE: %s estaba en la ejecucion anterior pero no hay datos de ella hoy", p)))
	}

	return alerts
}

// CheckHistoricalData verifica formatos faltantes, atraso no início das datas e
// quedas drásticas de gasto em relação ao snapshot anterior.
func (h *HistoryComparator) CheckHistoricalData(previous *domain.HistorySnapshot, rows []domain.ReportRow) []domain.Alert {
	var alerts []domain.Alert
	if !previous.IsComparable() {
		return alerts
	}

	alerts = append(alerts, h.checkMissingFormats(previous, rows)...)
	alerts = append(alerts, h.checkDateRanges(previous, rows)...)
	alerts = append(alerts, h.checkSpendDrops(previous, rows)...)

	return alerts
}

func (h *HistoryComparator) checkMissingFormats(previous *domain.HistorySnapshot, rows []domain.ReportRow) []domain.Alert {
	var alerts []domain.Alert
	current := formatsByPlatform(rows)

	for _, platform := range sortedKeys(previous.Formats) {
		for _, format := range sortedUnique(previous.Formats[platform]) {
			if current[platform][format] {
				continue
			}
			alerts = append(alerts, historyAlert(domain.SeverityCritical,
				fmt.Sprintf("FORMATO FALTANTE: %s de %s estaba en ejecucion anterior pero no aparece hoy", format, platform)))
		}
	}

	return alerts
}

func (h *HistoryComparator) checkDateRanges(previous *domain.HistorySnapshot, rows []domain.ReportRow) []domain.Alert {
	var alerts []domain.Alert
	current := dateRangesByPlatform(rows)

	for _, platform := range sortedKeys(previous.Dates) {
		previousMin, ok := previous.Dates[platform].MinDate()
		if !ok {
			continue
		}

		r, ok := current[platform]
		if !ok {
			continue
		}

		days := int(r.min.Sub(previousMin).Hours() / 24)
		if days <= maxStartDelayDays {
			continue
		}

		alerts = append(alerts, historyAlert(domain.SeverityCritical,
			fmt.Sprintf("RANGO DE FECHAS REDUCIDO en %s: Datos inician %s, pero antes iniciaban %s (faltan %d dias)",
				platform, r.min.Format(alertDateLayout), previousMin.Format(alertDateLayout), days)))
	}

	return alerts
}

func (h *HistoryComparator) checkSpendDrops(previous *domain.HistorySnapshot, rows []domain.ReportRow) []domain.Alert {
	var alerts []domain.Alert
	current := totalsByPlatform(rows)

	for _, platform := range sortedKeys(previous.Totals) {
		totals, ok := current[platform]
		if !ok {
			continue
		}

		previousSpend := previous.Totals[platform].Spend
		if previousSpend <= 0 {
			continue
		}

		variation := (totals.Spend - previousSpend) / previousSpend * 100
		if variation >= spendDropThresholdPct {
			continue
		}

		alerts = append(alerts, historyAlert(domain.SeverityWarning,
			fmt.Sprintf("CAIDA DRASTICA EN %s: Gasto cayo %.0f%% ($%s -> $%s)",
				platform, math.Abs(variation), h.money(previousSpend), h.money(totals.Spend))))
	}

	return alerts
}

// money formata valores com separador de milhar e duas casas (1,234.50)
func (h *HistoryComparator) money(v float64) string {
	return h.printer.Sprintf("%.2f", v)
}

func historyAlert(severity domain.AlertSeverity, msg string) domain.Alert {
	return domain.NewAlert(severity, domain.AlertSourceHistory, msg)
}

type dayRange struct {
	min time.Time
	max time.Time
}

func formatsByPlatform(rows []domain.ReportRow) map[string]map[string]bool {
	formats := make(map[string]map[string]bool)
	for i := range rows {
		platform := rows[i].Plataforma
		format := rows[i].Formato
		if platform == "" || format == "" {
			continue
		}
		if formats[platform] == nil {
			formats[platform] = make(map[string]bool)
		}
		formats[platform][format] = true
	}
	return formats
}

func dateRangesByPlatform(rows []domain.ReportRow) map[string]dayRange {
	ranges := make(map[string]dayRange)
	for i := range rows {
		platform := rows[i].Plataforma
		day := rows[i].Day
		if platform == "" || day.IsZero() {
			continue
		}

		r, ok := ranges[platform]
		if !ok {
			ranges[platform] = dayRange{min: day, max: day}
			continue
		}
		if day.Before(r.min) {
			r.min = day
		}
		if day.After(r.max) {
			r.max = day
		}
		ranges[platform] = r
	}
	return ranges
}

func totalsByPlatform(rows []domain.ReportRow) map[string]domain.PlatformTotals {
	totals := make(map[string]domain.PlatformTotals)
	for i := range rows {
		t := totals[rows[i].Plataforma]
		t.Spend += rows[i].Gasto
		t.Impressions += rows[i].Impresiones
		totals[rows[i].Plataforma] = t
	}
	return totals
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedUnique(values []string) []string {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return sortedKeys(set)
}
