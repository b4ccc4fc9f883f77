package normalizing

import (
	"regexp"
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

var nomenclatureSegment = regexp.MustCompile(`^([A-Za-z\x{00C0}-\x{00FF}]+):(.+)$`)

// nomenclatureAliases traduz nomes longos de campo para o nome da coluna de saída
var nomenclatureAliases = map[string]string{
	"COMUNICACION": domain.ColCom,
}

// NomenclatureFields são as colunas de metadados preenchidas a partir da nomenclatura
var NomenclatureFields = []string{
	domain.ColMarca,
	domain.ColPlataforma,
	domain.ColEtapa,
	domain.ColCompra,
	domain.ColCom,
	domain.ColFormato,
	domain.ColAudiencia,
}

// ParseNomenclature extrai os segmentos CAMPO:VALOR de um nome de campanha ou
// grupo de anúncios. Um mapa vazio é um resultado válido (nomenclatura legada).
func ParseNomenclature(name string) map[string]string {
	parsed := make(map[string]string)

	for _, segment := range strings.Split(name, "_") {
		match := nomenclatureSegment.FindStringSubmatch(strings.TrimSpace(segment))
		if match == nil {
			continue
		}

		field := strings.ToUpper(utils.Normalize(match[1]))
		if alias, ok := nomenclatureAliases[field]; ok {
			field = alias
		}

		if _, exists := parsed[field]; exists {
			continue
		}
		parsed[field] = strings.TrimSpace(match[2])
	}

	return parsed
}

// DisplayName é o nome de exibição da campanha: a tag CAMPANA quando existe,
// senão o nome bruto.
func DisplayName(rawName string) string {
	if name := ParseNomenclature(rawName)[domain.ColCampana]; name != "" {
		return name
	}
	return strings.TrimSpace(rawName)
}

// DetectCampaign procura a primeira tag CAMPANA na coluna de campanha da tabela
func DetectCampaign(table *domain.RawTable) string {
	col := FindCampaignColumn(table.Columns)
	if col < 0 {
		return ""
	}

	for _, row := range table.Rows {
		value := strings.TrimSpace(table.Value(row, col).String())
		if value == "" {
			continue
		}
		if name := ParseNomenclature(value)[domain.ColCampana]; name != "" {
			return name
		}
	}

	return ""
}
