package normalizing

import (
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

// Enricher transforma a tabela mapeada em linhas normalizadas
type Enricher struct {
	platform domain.Platform
	format   utils.NumberFormat
}

func NewEnricher(platform domain.Platform, format utils.NumberFormat) *Enricher {
	return &Enricher{platform: platform, format: format}
}

// BuildRows preenche metadados a partir da nomenclatura, calcula as métricas e
// descarta linhas sem data válida.
func (e *Enricher) BuildRows(table *domain.RawTable) []domain.ReportRow {
	campaignCol := FindCampaignColumn(table.Columns)
	adGroupCol := FindAdGroupColumn(table.Columns)
	metrics := locateMetricColumns(table)

	rows := make([]domain.ReportRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		var row domain.ReportRow

		if campaignCol >= 0 {
			campaign := strings.TrimSpace(table.Value(cells, campaignCol).String())
			row.Campana = campaign
			fillFromNomenclature(&row, ParseNomenclature(campaign), false)
		}

		if adGroupCol >= 0 {
			adGroup := strings.TrimSpace(table.Value(cells, adGroupCol).String())
			row.AdGroup = adGroup
			fillFromNomenclature(&row, ParseNomenclature(adGroup), true)
		}

		if row.Plataforma == "" {
			row.Plataforma = string(e.platform)
		}

		if !applyMetrics(&row, table, cells, metrics, e.format) {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

// fillFromNomenclature copia os campos encontrados. Com onlyEmpty os valores já
// preenchidos pela campanha são preservados.
func fillFromNomenclature(row *domain.ReportRow, parsed map[string]string, onlyEmpty bool) {
	for _, field := range NomenclatureFields {
		value, ok := parsed[field]
		if !ok {
			continue
		}
		if onlyEmpty && row.Field(field) != "" {
			continue
		}
		row.SetField(field, value)
	}
}
