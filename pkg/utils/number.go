package utils

import (
	"math"
	"strconv"
	"strings"
)

// NumberFormat descreve os separadores usados nos números de um arquivo
type NumberFormat struct {
	Decimal   rune
	Thousands rune
}

var (
	// DefaultNumberFormat 1,234.56
	DefaultNumberFormat = NumberFormat{Decimal: '.', Thousands: ','}
	// EuropeanNumberFormat 1.234,56
	EuropeanNumberFormat = NumberFormat{Decimal: ',', Thousands: '.'}
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseNumber converte o texto de uma célula em float64 respeitando o formato
// do arquivo. Retorna false quando o valor não é numérico. O separador de milhar
// só é aceito em grupos de três dígitos: "1234,56" no formato padrão é inválido.
func ParseNumber(raw string, format NumberFormat) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	raw = strings.TrimSuffix(raw, "%")
	raw = strings.TrimLeft(raw, "$€ ")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	if strings.ContainsRune(raw, format.Thousands) {
		if !hasThousandsGrouping(raw, format) {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(format.Thousands), "")
	}
	if format.Decimal != '.' {
		raw = strings.ReplaceAll(raw, string(format.Decimal), ".")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// hasThousandsGrouping verifica se a parte inteira segue o padrão 1,234,567
func hasThousandsGrouping(raw string, format NumberFormat) bool {
	integer := strings.TrimLeft(raw, "+-")
	if idx := strings.IndexRune(integer, format.Decimal); idx >= 0 {
		integer = integer[:idx]
	}

	groups := strings.Split(integer, string(format.Thousands))
	for i, group := range groups {
		if i == 0 && (len(group) < 1 || len(group) > 3) {
			return false
		}
		if i > 0 && len(group) != 3 {
			return false
		}
		for _, r := range group {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
