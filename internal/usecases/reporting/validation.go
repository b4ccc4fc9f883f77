package reporting

import (
	"fmt"
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
)

// PlaceholderUndefined é o valor usado pelas planilhas para campos não preenchidos
const PlaceholderUndefined = "Sin definir"

const (
	emptyFieldWarningRatio  = 0.5
	emptyFieldCriticalRatio = 0.8
)

type importantField struct {
	Name        string
	Description string
}

var importantFields = []importantField{
	{domain.ColAudiencia, "Necesario para segmentacion"},
	{domain.ColEtapa, "Necesario para analisis de funnel"},
	{domain.ColFormato, "Necesario para analisis de creativos"},
	{domain.ColCompra, "Necesario para analisis de costos"},
	{domain.ColCom, "Necesario para analisis de mensajes"},
}

// CheckEmptyFields alerta quando campos de metadados importantes estão vazios em
// boa parte das linhas: CRITICO a partir de 80%, ADVERTENCIA a partir de 50%.
func CheckEmptyFields(rows []domain.ReportRow) []domain.Alert {
	var alerts []domain.Alert
	total := len(rows)
	if total == 0 {
		return alerts
	}

	for _, field := range importantFields {
		empty := 0
		var platforms []string
		seen := make(map[string]bool)

		for i := range rows {
			if !isEmptyValue(rows[i].Field(field.Name)) {
				continue
			}
			empty++
			if p := rows[i].Plataforma; !seen[p] {
				seen[p] = true
				platforms = append(platforms, p)
			}
		}

		ratio := float64(empty) / float64(total)
		if ratio < emptyFieldWarningRatio {
			continue
		}

		severity := domain.SeverityWarning
		if ratio >= emptyFieldCriticalRatio {
			severity = domain.SeverityCritical
		}

		msg := fmt.Sprintf("Campo %s vacio en %d/%d filas (%.0f%%). Plataformas afectadas: %s. %s",
			field.Name, empty, total, ratio*100, strings.Join(platforms, ", "), field.Description)
		alerts = append(alerts, domain.NewAlert(severity, domain.AlertSourceValidation, msg))
	}

	return alerts
}

func isEmptyValue(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == PlaceholderUndefined
}
