package reporting

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
)

const defaultReportTitle = "REPORTE DE PERFORMANCE"

// brandDisplayNames traduz as siglas de marca usadas na nomenclatura
var brandDisplayNames = map[string]string{
	"DC":   "DINERS CLUB",
	"VISA": "VISA",
	"MC":   "MASTERCARD",
	"AMEX": "AMERICAN EXPRESS",
}

var nomenclatureTag = regexp.MustCompile(`[A-Za-z\x{00C0}-\x{00FF}]+:[^_]+_?`)

// ExtractCampaignInfo identifica título e marca da campanha a partir das linhas unificadas
func ExtractCampaignInfo(rows []domain.ReportRow) domain.CampaignInfo {
	brand := mostFrequentBrand(rows)
	name := campaignName(rows)

	info := domain.CampaignInfo{Brand: brand}
	if brand != "" {
		info.BrandDisplay = brand
		if display, ok := brandDisplayNames[strings.ToUpper(brand)]; ok {
			info.BrandDisplay = display
		}
	}

	switch {
	case name != "":
		info.Title = strings.ToUpper(name)
	case brand != "":
		info.Title = "CAMPANA " + strings.ToUpper(brand)
	default:
		info.Title = defaultReportTitle
	}

	return info
}

// mostFrequentBrand retorna a MARCA mais frequente; empates ficam com a primeira vista
func mostFrequentBrand(rows []domain.ReportRow) string {
	counts := make(map[string]int)
	var order []string

	for i := range rows {
		brand := strings.TrimSpace(rows[i].Marca)
		if brand == "" {
			continue
		}
		if _, ok := counts[brand]; !ok {
			order = append(order, brand)
		}
		counts[brand]++
	}

	best := ""
	for _, brand := range order {
		if best == "" || counts[brand] > counts[best] {
			best = brand
		}
	}
	return best
}

// campaignName usa a primeira tag CAMPANA encontrada ou, na falta dela, o menor
// nome de campanha sem os segmentos CAMPO:VALOR.
func campaignName(rows []domain.ReportRow) string {
	var names []string
	seen := make(map[string]bool)
	for i := range rows {
		name := rows[i].Campana
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, name := range names {
		if tag := normalizing.ParseNomenclature(name)[domain.ColCampana]; tag != "" {
			return tag
		}
	}

	if len(names) == 0 {
		return ""
	}

	shortest := names[0]
	for _, name := range names[1:] {
		if utf8.RuneCountInString(name) < utf8.RuneCountInString(shortest) {
			shortest = name
		}
	}

	return strings.Trim(nomenclatureTag.ReplaceAllString(shortest, ""), "_ ")
}
