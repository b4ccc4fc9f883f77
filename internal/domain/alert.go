package domain

import "sort"

// AlertSeverity é o nível de um alerta de qualidade de dados
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "CRITICO"
	SeverityError    AlertSeverity = "ERROR"
	SeverityWarning  AlertSeverity = "ADVERTENCIA"
)

// Origens usadas em alertas que não pertencem a um arquivo
const (
	AlertSourceValidation = "VALIDACION DE DATOS"
	AlertSourceHistory    = "COMPARACION HISTORICA"
)

type Alert struct {
	Severity AlertSeverity `json:"tipo"`
	Source   string        `json:"archivo"`
	Message  string        `json:"mensaje"`
}

func NewAlert(severity AlertSeverity, source, message string) Alert {
	return Alert{Severity: severity, Source: source, Message: message}
}

// AlertCounts resume a quantidade de alertas por severidade
type AlertCounts struct {
	Critical int `json:"criticos"`
	Errors   int `json:"errores"`
	Warnings int `json:"advertencias"`
}

func severityRank(s AlertSeverity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	default:
		return 3
	}
}

// SortAlerts ordena por severidade (CRITICO, ERROR, ADVERTENCIA) mantendo a ordem de chegada
func SortAlerts(alerts []Alert) []Alert {
	sorted := make([]Alert, len(alerts))
	copy(sorted, alerts)

	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank(sorted[i].Severity) < severityRank(sorted[j].Severity)
	})

	return sorted
}

func CountAlerts(alerts []Alert) AlertCounts {
	var counts AlertCounts
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			counts.Critical++
		case SeverityError:
			counts.Errors++
		case SeverityWarning:
			counts.Warnings++
		}
	}
	return counts
}
