package normalizing

import (
	"math"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// limites do serial de data do Excel: 01/01/1900 a 31/12/9999
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// CellNumber converte uma célula em número. Valores inválidos ou ausentes viram 0.
func CellNumber(cell domain.Cell, format utils.NumberFormat) float64 {
	switch cell.Kind {
	case domain.CellNumber:
		if math.IsNaN(cell.Num) || math.IsInf(cell.Num, 0) {
			return 0
		}
		return cell.Num
	case domain.CellString:
		if n, ok := utils.ParseNumber(cell.Str, format); ok {
			return n
		}
	}
	return 0
}

// ParseCellDate interpreta a célula de data. Números são tratados como serial do Excel.
func ParseCellDate(cell domain.Cell) (time.Time, bool) {
	switch cell.Kind {
	case domain.CellNumber:
		if !(cell.Num >= minExcelSerial && cell.Num <= maxExcelSerial) {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(cell.Num, false)
		if err != nil {
			return time.Time{}, false
		}
		return utils.TruncateDay(t), true
	case domain.CellString:
		return utils.ParseFlexibleDate(cell.Str)
	}
	return time.Time{}, false
}

// Rate calcula numerador/impressões em percentual com duas casas. 0 quando não há impressões.
func Rate(numerator, impressions float64) float64 {
	if impressions <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(numerator / impressions * 100)
}

// metricColumns guarda as posições das colunas numéricas mapeadas (-1 quando ausente)
type metricColumns struct {
	gasto       int
	alcance     int
	frecuencia  int
	clics       int
	views       int
	impresiones int
	dia         int
}

func locateMetricColumns(table *domain.RawTable) metricColumns {
	return metricColumns{
		gasto:       table.ColumnIndex(MappedGasto),
		alcance:     table.ColumnIndex(MappedAlcance),
		frecuencia:  table.ColumnIndex(MappedFrecuencia),
		clics:       table.ColumnIndex(MappedClics),
		views:       table.ColumnIndex(MappedViews),
		impresiones: table.ColumnIndex(MappedImpresiones),
		dia:         table.ColumnIndex(MappedDia),
	}
}

// applyMetrics preenche os campos numéricos e as taxas. Retorna false quando a
// linha não tem uma data válida e deve ser descartada.
func applyMetrics(row *domain.ReportRow, table *domain.RawTable, cells []domain.Cell, cols metricColumns, format utils.NumberFormat) bool {
	day, ok := ParseCellDate(table.Value(cells, cols.dia))
	if !ok {
		return false
	}
	row.SetDay(day)

	number := func(col int) float64 {
		return CellNumber(table.Value(cells, col), format)
	}

	row.Gasto = number(cols.gasto)
	row.Alcance = number(cols.alcance)
	row.Frecuencia = number(cols.frecuencia)
	row.Clics = number(cols.clics)
	row.Views = number(cols.views)
	row.Impresiones = number(cols.impresiones)

	if cols.clics >= 0 && cols.impresiones >= 0 {
		row.CTR = Rate(row.Clics, row.Impresiones)
	}
	if cols.views >= 0 && cols.impresiones >= 0 {
		row.VTR = Rate(row.Views, row.Impresiones)
	}

	return true
}
