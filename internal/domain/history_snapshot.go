package domain

import "time"

// Versões do esquema de snapshots. Snapshots legados (fluxo de upload combinado)
// nunca são usados como base de comparação.
const (
	SnapshotSchemaLegacy      = 1
	SnapshotSchemaPerCampaign = 2

	CurrentSnapshotSchemaVersion = SnapshotSchemaPerCampaign
	MinComparableSchemaVersion   = SnapshotSchemaPerCampaign
)

// SnapshotDateLayout é o formato das datas guardadas no histórico
const SnapshotDateLayout = time.DateOnly

type DateRange struct {
	Min string `json:"fecha_min"`
	Max string `json:"fecha_max"`
}

// MinDate retorna a data inicial do intervalo
func (d DateRange) MinDate() (time.Time, bool) {
	if d.Min == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(SnapshotDateLayout, d.Min)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type PlatformTotals struct {
	Spend       float64 `json:"GASTO"`
	Impressions float64 `json:"IMPRESIONES"`
}

// HistorySnapshot é o resumo de uma execução usado na comparação com a próxima
type HistorySnapshot struct {
	ID            int64                     `json:"id"`
	RunID         string                    `json:"run_id"`
	CampaignID    string                    `json:"campaign_id"`
	SchemaVersion int                       `json:"schema_version"`
	Platforms     []string                  `json:"platforms"`
	Formats       map[string][]string       `json:"formats"`
	Dates         map[string]DateRange      `json:"dates"`
	Totals        map[string]PlatformTotals `json:"totals"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// IsComparable indica se o snapshot pode servir de base para a comparação histórica
func (s *HistorySnapshot) IsComparable() bool {
	return s != nil && s.SchemaVersion >= MinComparableSchemaVersion
}
