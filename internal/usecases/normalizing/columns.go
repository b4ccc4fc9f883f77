package normalizing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

// Nomes canônicos atribuídos às colunas reconhecidas
const (
	MappedAlcance     = domain.ColAlcance
	MappedGasto       = domain.ColGasto
	MappedFrecuencia  = domain.ColFrecuencia
	MappedClics       = domain.ColClics
	MappedViews       = domain.ColViews
	MappedImpresiones = domain.ColImpresiones
	MappedDia         = domain.ColDia
	MappedCampana     = domain.ColCampana
	MappedAdGroup     = "AD_GROUP"
)

type columnSynonyms struct {
	Canonical string
	Variants  []string
}

// columnMapping é a tabela de sinônimos em ordem de prioridade. Dentro de cada
// campo a primeira variante encontrada vence.
var columnMapping = []columnSynonyms{
	{MappedAlcance, []string{"alcance", "reach", "unique users"}},
	{MappedGasto, []string{
		"importe gastado", "amount spent", "cost", "costo", "spend", "coste",
		"importe gastado (usd)", "total cost",
	}},
	{MappedFrecuencia, []string{"frecuencia", "frequency", "avg frequency"}},
	{MappedClics, []string{
		"clics en el enlace", "link clicks", "clics", "clicks",
		"clicks (destination)", "all clicks", "clicks (all)",
	}},
	{MappedViews, []string{
		"thruplays", "thru plays", "visualizaciones de trueview", "vistas de trueview",
		"trueview views", "15-second focused views", "vistas", "views", "video views",
	}},
	{MappedImpresiones, []string{"impresiones", "impressions", "impr.", "imps"}},
	{MappedDia, []string{"dia", "day", "by day", "date", "fecha", "reporting starts"}},
	{MappedCampana, []string{"nombre de la campana", "campaign name", "campaign", "campana"}},
	{MappedAdGroup, []string{
		"nombre del conjunto de anuncios", "ad set name", "ad group name",
		"grupo de anuncios", "ad set", "ad group",
	}},
}

var (
	criticalColumns  = []string{MappedGasto, MappedImpresiones, MappedDia}
	importantColumns = []string{MappedClics, MappedViews, MappedCampana}

	// colunas que uma plataforma não exporta e por isso não geram alerta
	platformExemptColumns = map[domain.Platform][]string{
		domain.PlatformGoogle: {MappedAlcance, MappedFrecuencia},
	}
)

var (
	campaignColumnKeywords = []string{"campaign", "campana"}
	adGroupColumnKeywords  = []string{"conjunto", "ad set", "ad group", "ad_group", "grupo"}
)

// MapColumns renomeia as colunas reconhecidas para o nome canônico e gera os
// alertas de colunas faltantes. Colunas não reconhecidas são mantidas.
func MapColumns(table *domain.RawTable, filename string, platform domain.Platform) (*domain.RawTable, []domain.Alert) {
	normalized := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		normalized[i] = utils.Normalize(col)
	}

	columns := make([]string, len(table.Columns))
	copy(columns, table.Columns)

	claimed := make([]bool, len(columns))
	found := make(map[string]bool, len(columnMapping))

	for _, mapping := range columnMapping {
		idx := findVariant(normalized, claimed, mapping.Variants)
		if idx < 0 {
			continue
		}
		claimed[idx] = true
		columns[idx] = mapping.Canonical
		found[mapping.Canonical] = true
	}

	mapped := &domain.RawTable{Columns: columns, Rows: table.Rows}
	return mapped, CheckRequiredColumns(found, filename, platform)
}

func findVariant(normalized []string, claimed []bool, variants []string) int {
	for _, variant := range variants {
		target := utils.Normalize(variant)
		for i, col := range normalized {
			if !claimed[i] && col == target {
				return i
			}
		}
	}
	return -1
}

// CheckRequiredColumns gera um CRITICO para colunas críticas faltantes e uma
// ADVERTENCIA para colunas importantes faltantes.
func CheckRequiredColumns(found map[string]bool, filename string, platform domain.Platform) []domain.Alert {
	var alerts []domain.Alert
	exempt := platformExemptColumns[platform]

	if missing := missingColumns(criticalColumns, found, exempt); len(missing) > 0 {
		alerts = append(alerts, domain.NewAlert(
			domain.SeverityCritical,
			filename,
			fmt.Sprintf("COLUMNAS CRITICAS FALTANTES: %s", strings.Join(missing, ", ")),
		))
	}

	if missing := missingColumns(importantColumns, found, exempt); len(missing) > 0 {
		alerts = append(alerts, domain.NewAlert(
			domain.SeverityWarning,
			filename,
			fmt.Sprintf("Columnas importantes faltantes: %s", strings.Join(missing, ", ")),
		))
	}

	return alerts
}

func missingColumns(required []string, found map[string]bool, exempt []string) []string {
	var missing []string
	for _, col := range required {
		if found[col] || slices.Contains(exempt, col) {
			continue
		}
		missing = append(missing, col)
	}
	return missing
}

// FindCampaignColumn localiza a coluna com o nome da campanha, priorizando a canônica
func FindCampaignColumn(columns []string) int {
	return findColumn(columns, MappedCampana, campaignColumnKeywords)
}

// FindAdGroupColumn localiza a coluna do conjunto/grupo de anúncios
func FindAdGroupColumn(columns []string) int {
	return findColumn(columns, MappedAdGroup, adGroupColumnKeywords)
}

// FindDateColumn localiza a coluna de data, priorizando a canônica
func FindDateColumn(columns []string) int {
	for i, col := range columns {
		if col == MappedDia {
			return i
		}
	}
	for i, col := range columns {
		switch utils.Normalize(col) {
		case "dia", "day", "date", "fecha":
			return i
		}
	}
	return -1
}

func findColumn(columns []string, canonical string, keywords []string) int {
	for i, col := range columns {
		if col == canonical {
			return i
		}
	}

	for i, col := range columns {
		normalized := utils.Normalize(col)
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				return i
			}
		}
	}

	return -1
}
