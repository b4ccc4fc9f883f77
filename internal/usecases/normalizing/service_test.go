package normalizing

import (
	"strings"
	"testing"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestService_ProcessFile_Meta(t *testing.T) {
	content := strings.Join([]string{
		"Nombre de la campaña,Nombre del conjunto de anuncios,Día,Alcance,Impresiones,Importe gastado (USD),Frecuencia,Clics en el enlace,ThruPlays",
		"MARCA:VISA_CAMPANA:Verano_ETAPA:Awareness,AUDIENCIA:Jovenes_FORMATO:Video_ETAPA:Consideracion,2024-01-01,1000,5000,50.5,5,25,500",
		"Total,,,1000,5000,50.5,,,",
	}, "\n")

	result, err := NewService().ProcessFile([]byte(content), "meta.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformMeta, result.Platform)
	assert.Empty(t, result.Alerts)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, "MARCA:VISA_CAMPANA:Verano_ETAPA:Awareness", row.Campana)
	assert.Equal(t, "AUDIENCIA:Jovenes_FORMATO:Video_ETAPA:Consideracion", row.AdGroup)
	assert.Equal(t, "VISA", row.Marca)
	assert.Equal(t, "META", row.Plataforma)
	assert.Equal(t, "Awareness", row.Etapa, "o grupo de anúncios não sobrescreve a campanha")
	assert.Equal(t, "Jovenes", row.Audiencia)
	assert.Equal(t, "Video", row.Formato)
	assert.Equal(t, "", row.Compra)
	assert.Equal(t, float64(1000), row.Alcance)
	assert.Equal(t, float64(5000), row.Impresiones)
	assert.Equal(t, 50.5, row.Gasto)
	assert.Equal(t, float64(5), row.Frecuencia)
	assert.Equal(t, 0.5, row.CTR)
	assert.Equal(t, float64(10), row.VTR)
	assert.Equal(t, "01/01/24", row.Dia)
}

func TestService_ProcessFile_Google(t *testing.T) {
	content := strings.Join([]string{
		"Campaign,Ad group,Day,Impr.,Cost,Clicks,TrueView views",
		"PLATAFORMA:YOUTUBE_FORMATO:Bumper,Grupo 1,2024-01-01,2000,30,10,400",
		"FORMATO:Bumper,Grupo 1,2024-01-02,0,0,3,0",
		"FORMATO:Bumper,Grupo 1,no es fecha,10,1,1,1",
	}, "\n")

	result, err := NewService().ProcessFile([]byte(content), "google.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformGoogle, result.Platform)
	assert.Empty(t, result.Alerts)
	require.Len(t, result.Rows, 2)

	assert.Equal(t, "YOUTUBE", result.Rows[0].Plataforma)
	assert.Equal(t, "GOOGLE", result.Rows[1].Plataforma)
	assert.Equal(t, "Grupo 1", result.Rows[0].AdGroup)
	assert.Equal(t, float64(0), result.Rows[0].Alcance)
	assert.Equal(t, 0.5, result.Rows[0].CTR)
	assert.Equal(t, float64(20), result.Rows[0].VTR)

	assert.Equal(t, float64(0), result.Rows[1].CTR)
	assert.Equal(t, float64(0), result.Rows[1].VTR)
}

func TestService_ProcessFile_UnknownPlatform(t *testing.T) {
	content := "Campaign,Day,Impressions,Spend\nX,2024-01-01,10,1\n"

	result, err := NewService().ProcessFile([]byte(content), "otro.csv")
	require.NoError(t, err)

	assert.Equal(t, domain.PlatformUnknown, result.Platform)
	require.NotEmpty(t, result.Alerts)
	assert.Equal(t, domain.SeverityWarning, result.Alerts[0].Severity)
	assert.Equal(t, "No se pudo detectar la plataforma automaticamente", result.Alerts[0].Message)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "DESCONOCIDO", result.Rows[0].Plataforma)
}

func TestService_ProcessFile_ReadError(t *testing.T) {
	result, err := NewService().ProcessFile([]byte("not a workbook"), "roto.xlsx")

	require.Error(t, err)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "roto.xlsx", fileErr.Filename)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.SeverityError, result.Alerts[0].Severity)
	assert.Equal(t, "roto.xlsx", result.Alerts[0].Source)
	assert.True(t, strings.HasPrefix(result.Alerts[0].Message, "No se pudo leer el archivo: "))
	assert.Empty(t, result.Rows)
}

func TestService_ProcessFile_NoDateColumn(t *testing.T) {
	content := "Campaign,Clicks,Impressions,Cost,Views\nX,1,10,1,0\n"

	result, err := NewService().ProcessFile([]byte(content), "sin_fecha.csv")
	require.NoError(t, err)

	assert.Empty(t, result.Rows)
	require.NotEmpty(t, result.Alerts)

	var messages []string
	for _, a := range result.Alerts {
		messages = append(messages, a.Message)
	}
	assert.Contains(t, messages, "COLUMNAS CRITICAS FALTANTES: DIA")
}

func TestService_ProcessFile_SemicolonDecimalComma(t *testing.T) {
	content := "Campaign name;Day;Impressions;Cost;Clicks\nX;2024-01-15;1000;1234,56;10\n"

	result, err := NewService().ProcessFile([]byte(content), "meta.csv")
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, 1234.56, result.Rows[0].Gasto)
	assert.Equal(t, float64(1000), result.Rows[0].Impresiones)
	assert.Equal(t, "15/01/24", result.Rows[0].Dia)
}

func TestService_ProcessFile_ExcelRowWithUnnamedCell(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Campaign name", "Day", "Impressions", "Cost"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"X", "2024-01-15", 1000, 10, "nota"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"X", "2024-01-16", 500, 5}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := NewService().ProcessFile(buf.Bytes(), "meta.xlsx")
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "15/01/24", result.Rows[0].Dia)
	assert.Equal(t, float64(10), result.Rows[0].Gasto)
	assert.Equal(t, "16/01/24", result.Rows[1].Dia)
}
