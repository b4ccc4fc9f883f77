package utils

import (
	"strings"
	"time"
)

// DayLayout é o formato de saída da coluna DIA (dd/mm/yy)
const DayLayout = "02/01/06"

// Ordem de tentativa: ISO primeiro, depois mês/dia e por último dia/mês
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseFlexibleDate tenta interpretar datas nos formatos exportados pelas plataformas
func ParseFlexibleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return TruncateDay(t), true
		}
	}

	return time.Time{}, false
}

// TruncateDay remove o horário mantendo o dia do calendário em UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay formata a data no padrão da coluna DIA
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
