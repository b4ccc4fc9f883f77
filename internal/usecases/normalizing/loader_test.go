package normalizing

import (
	"os"
	"testing"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoader_LoadCSV(t *testing.T) {
	loader := NewLoader()

	t.Run("Detecta cabeçalho abaixo das linhas de título", func(t *testing.T) {
		content := []byte("Reporte de campaña\n\nCampaign name,Day,Impressions,Amount spent\nX,2024-01-01,100,10.5\n")

		table, info, err := loader.Load(content, "meta.csv")
		require.NoError(t, err)

		assert.Equal(t, 2, info.HeaderRow)
		assert.Equal(t, FormatCSV, info.Format)
		assert.Equal(t, "utf-8", info.Encoding)
		assert.False(t, info.European)
		assert.Equal(t, []string{"Campaign name", "Day", "Impressions", "Amount spent"}, table.Columns)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "10.5", table.Rows[0][3].String())
	})

	t.Run("Formato europeu com ponto e vírgula", func(t *testing.T) {
		content := []byte("Campaña;Día;Impresiones;Importe gastado\n\"X\";\"01/02/2024\";\"1.234\";\"1.234,56\"\n")

		table, info, err := loader.Load(content, "meta.csv")
		require.NoError(t, err)

		assert.True(t, info.European)
		assert.Equal(t, ';', info.Delimiter)
		assert.Equal(t, utils.EuropeanNumberFormat, info.NumberFormat)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 1234.56, CellNumber(table.Rows[0][3], info.NumberFormat))
		assert.Equal(t, float64(1234), CellNumber(table.Rows[0][2], info.NumberFormat))
	})

	t.Run("Vírgula decimal sem aspas com ponto e vírgula", func(t *testing.T) {
		content := []byte("Campaign name;Day;Impressions;Cost;Clicks\nX;2024-01-15;1000;1234,56;10\n")

		table, info, err := loader.Load(content, "meta.csv")
		require.NoError(t, err)

		assert.True(t, info.European)
		assert.Equal(t, ';', info.Delimiter)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 1234.56, CellNumber(table.Rows[0][3], info.NumberFormat))
	})

	t.Run("Ponto e vírgula com números inteiros mantém formato padrão", func(t *testing.T) {
		content := []byte("Campaign name;Day;Impressions;Cost\nX;2024-01-15;1000;12.5\n")

		table, info, err := loader.Load(content, "meta.csv")
		require.NoError(t, err)

		assert.False(t, info.European)
		assert.Equal(t, 12.5, CellNumber(table.Rows[0][3], info.NumberFormat))
	})

	t.Run("Fallback para Latin-1", func(t *testing.T) {
		content := []byte("Campa\xf1a,D\xeda,Impresiones\nX,2024-01-01,5\n")

		table, info, err := loader.Load(content, "latin.csv")
		require.NoError(t, err)

		assert.Equal(t, "latin-1", info.Encoding)
		assert.Equal(t, "Campaña", table.Columns[0])
		assert.Equal(t, "Día", table.Columns[1])
	})

	t.Run("Linhas malformadas são ignoradas", func(t *testing.T) {
		content := []byte("a,b\n1,2,3\n4,5\n\n6\n")

		table, info, err := loader.Load(content, "x.csv")
		require.NoError(t, err)

		assert.Equal(t, 0, info.HeaderRow)
		assert.Equal(t, 1, info.SkippedRows)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "4", table.Rows[0][0].String())
		assert.Equal(t, "6", table.Rows[1][0].String())
		assert.True(t, table.Rows[1][1].IsMissing())
	})

	t.Run("Colunas repetidas e sem nome", func(t *testing.T) {
		content := []byte("Day,Clicks,Clicks,\n2024-01-01,1,2,3\n")

		table, _, err := loader.Load(content, "x.csv")
		require.NoError(t, err)

		assert.Equal(t, []string{"Day", "Clicks", "Clicks.1", "Unnamed: 3"}, table.Columns)
	})

	t.Run("Arquivo vazio", func(t *testing.T) {
		_, _, err := loader.Load([]byte("  \n"), "x.csv")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestLoader_LoadExcel(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Informe de rendimiento"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Campaign", "Day", "Impr.", "Cost"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"MARCA:VISA_CAMPANA:Verano", 45292, 1000, 12.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]interface{}{"MARCA:VISA_CAMPANA:Verano", "2024-01-02", 500, 7}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, info, err := NewLoader().Load(buf.Bytes(), "google.xlsx")
	require.NoError(t, err)

	assert.Equal(t, FormatExcel, info.Format)
	assert.Equal(t, []string{"Campaign", "Day", "Impr.", "Cost"}, table.Columns)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, domain.CellNumber, table.Rows[0][2].Kind)
	assert.Equal(t, float64(1000), table.Rows[0][2].Num)

	day, ok := ParseCellDate(table.Rows[0][1])
	require.True(t, ok)
	assert.Equal(t, "01/01/24", utils.FormatDay(day))

	day, ok = ParseCellDate(table.Rows[1][1])
	require.True(t, ok)
	assert.Equal(t, "02/01/24", utils.FormatDay(day))
}

func TestLoader_LoadExcel_ExtraCellsBeyondHeader(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Campaign name", "Day", "Impressions", "Cost"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"X", "2024-01-15", 1000, 10, "nota"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"X", "2024-01-16", 500, 5}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, info, err := NewLoader().Load(buf.Bytes(), "meta.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 0, info.SkippedRows)
	assert.Equal(t, []string{"Campaign name", "Day", "Impressions", "Cost", "Unnamed: 4"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "nota", table.Rows[0][4].String())
	assert.Equal(t, "2024-01-16", table.Rows[1][1].String())
	assert.True(t, table.Rows[1][4].IsMissing())
}

func TestLoader_LoadLegacyExcel(t *testing.T) {
	content, err := os.ReadFile("testdata/legacy_sheet.xls")
	require.NoError(t, err)

	table, info, err := NewLoader().Load(content, "relatorio.xls")
	require.NoError(t, err)

	assert.Equal(t, FormatExcel, info.Format)
	assert.Equal(t, "xls", info.Encoding)
	require.NotEmpty(t, table.Rows)

	var found []domain.Cell
	for _, row := range table.Rows {
		if len(row) > 3 && row[3].String() == "String 3" {
			found = row
			break
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, domain.NumberCell(3), found[0])
	assert.Equal(t, domain.NumberCell(4), found[1])
	assert.Equal(t, domain.NumberCell(2.1), found[2])
}

func TestLoader_LoadCorruptedLegacyExcel(t *testing.T) {
	content := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, []byte("sem conteúdo")...)

	_, info, err := NewLoader().Load(content, "relatorio.xls")
	assert.Error(t, err)
	assert.Equal(t, "xls", info.Encoding)
}

func TestExcelCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Cell
	}{
		{name: "vazio", raw: "  ", want: domain.MissingCell()},
		{name: "número", raw: "12.5", want: domain.NumberCell(12.5)},
		{name: "notação científica", raw: "1e3", want: domain.NumberCell(1000)},
		{name: "NaN", raw: "NaN", want: domain.StringCell("NaN")},
		{name: "infinito", raw: "-Inf", want: domain.StringCell("-Inf")},
		{name: "hexadecimal", raw: "0x1p-2", want: domain.StringCell("0x1p-2")},
		{name: "texto", raw: "Verano", want: domain.StringCell("Verano")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excelCell(tt.raw))
		})
	}
}

func TestLoader_LoadInvalidExcel(t *testing.T) {
	_, _, err := NewLoader().Load([]byte("isto não é uma planilha"), "relatorio.xlsx")
	assert.Error(t, err)
}

func TestIsCSV(t *testing.T) {
	assert.True(t, IsCSV("meta.csv"))
	assert.True(t, IsCSV("META.CSV"))
	assert.False(t, IsCSV("google.xlsx"))
	assert.False(t, IsCSV("sem_extensao"))
}
