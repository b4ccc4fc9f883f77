package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andresaguirresm-cpu/reportes-web/infrastructure/repository/mocks"
	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	metaHeader   = "Nombre de la campaña,Nombre del conjunto de anuncios,Día,Alcance,Impresiones,Importe gastado (USD),Frecuencia,Clics en el enlace,ThruPlays"
	googleHeader = "Campaign,Ad group,Day,Impr.,Cost,Clicks,TrueView views"

	veranoMeta   = "MARCA:VISA_CAMPANA:Verano_ETAPA:Awareness_COMPRA:CPM_COM:Promo"
	veranoGoogle = "MARCA:VISA_CAMPANA:Verano_ETAPA:Awareness_COMPRA:CPV_COM:Promo_FORMATO:Bumper_AUDIENCIA:Adultos"
	adSetVideo   = "AUDIENCIA:Jovenes_FORMATO:Video"
)

func csvFile(name string, lines ...string) domain.UploadedFile {
	return domain.UploadedFile{Filename: name, Content: []byte(strings.Join(lines, "\n"))}
}

func metaFile(spend string) domain.UploadedFile {
	return csvFile("meta.csv",
		metaHeader,
		veranoMeta+","+adSetVideo+",2024-01-01,1000,3000,"+spend+",3,30,300",
		veranoMeta+","+adSetVideo+",2024-01-01,500,2000,"+spend+",4,20,200",
		veranoMeta+","+adSetVideo+",2024-01-02,800,1820,"+spend+",2,10,100",
	)
}

func googleFile() domain.UploadedFile {
	return csvFile("google.csv",
		googleHeader,
		veranoGoogle+",Grupo 1,2024-01-01,2000,30,10,400",
		veranoGoogle+",Grupo 1,2024-01-02,1000,20,5,100",
	)
}

func newTestService(ctrl *gomock.Controller) (Reporter, *mocks.MockRunHistoryRepository) {
	mockRepo := mocks.NewMockRunHistoryRepository(ctrl)
	svc := NewService(
		normalizing.NewService(),
		NewHistoryComparator(mockRepo),
		config.Processing{OverlapPct: 72, MaxConcurrentFiles: 2},
	)
	return svc, mockRepo
}

func alertMessages(alerts []domain.Alert) []string {
	messages := make([]string, 0, len(alerts))
	for _, a := range alerts {
		messages = append(messages, a.Message)
	}
	return messages
}

func TestService_ProcessBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestService(ctrl)

	var saved *domain.HistorySnapshot
	gomock.InOrder(
		mockRepo.EXPECT().
			GetLatestByCampaign("verano", domain.MinComparableSchemaVersion).
			Return(nil, nil),
		mockRepo.EXPECT().
			Save(gomock.Any()).
			DoAndReturn(func(s *domain.HistorySnapshot) error {
				saved = s
				return nil
			}),
	)

	result, err := svc.ProcessBatch(context.Background(), BatchRequest{
		CampaignID: "verano",
		RunID:      "run-1",
		Files:      []domain.UploadedFile{metaFile("10"), googleFile()},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, 5, result.TotalRows)
	assert.Len(t, result.Rows, 5)
	assert.Equal(t, []domain.Platform{domain.PlatformMeta, domain.PlatformGoogle}, result.Platforms)
	assert.Empty(t, result.Alerts, alertMessages(result.Alerts))

	require.NotNil(t, result.Reach)
	assert.Equal(t, 72, result.Reach.OverlapPct)
	assert.InDelta(t, 1364.0, result.Reach.FinalReach, 1e-6)
	assert.Equal(t, 5.0, result.Reach.Frequency)
	require.Len(t, result.Reach.DailyEvolution, 2)
	assert.InDelta(t, 1140.0, result.Reach.DailyEvolution[0].DayReach, 1e-6)

	assert.Equal(t, domain.CampaignInfo{Title: "VERANO", Brand: "VISA", BrandDisplay: "VISA"}, result.CampaignInfo)

	require.NotNil(t, saved)
	assert.Equal(t, "verano", saved.CampaignID)
	assert.Equal(t, "run-1", saved.RunID)
	assert.Equal(t, []string{"META", "GOOGLE"}, saved.Platforms)
	assert.Equal(t, domain.DateRange{Min: "2024-01-01", Max: "2024-01-02"}, saved.Dates["META"])
}

func TestService_ProcessBatch_GeneratesRunID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(ctrl)

	result, err := svc.ProcessBatch(context.Background(), BatchRequest{Files: []domain.UploadedFile{googleFile()}})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
}

func TestService_ProcessBatch_FileErrors(t *testing.T) {
	broken := domain.UploadedFile{Filename: "roto.xlsx", Content: []byte("not a workbook")}

	t.Run("Arquivo ilegível vira alerta e o lote continua", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestService(ctrl)

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			Files: []domain.UploadedFile{broken, googleFile()},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, []domain.Platform{domain.PlatformGoogle}, result.Platforms)
		require.Len(t, result.Alerts, 1)
		assert.Equal(t, domain.SeverityError, result.Alerts[0].Severity)
		assert.Equal(t, "roto.xlsx", result.Alerts[0].Source)
		assert.True(t, strings.HasPrefix(result.Alerts[0].Message, "No se pudo leer el archivo: "))
	})

	t.Run("Nenhum arquivo processado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestService(ctrl)

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			CampaignID: "verano",
			Files:      []domain.UploadedFile{broken},
		})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoFilesProcessed)
	})

	t.Run("Contexto cancelado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestService(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := svc.ProcessBatch(ctx, BatchRequest{Files: []domain.UploadedFile{googleFile()}})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// panickingProcessor entra em pânico para um arquivo específico
type panickingProcessor struct {
	normalizing.FileProcessor
	filename string
}

func (p panickingProcessor) ProcessFile(content []byte, filename string) (*domain.FileResult, error) {
	if filename == p.filename {
		panic("decoder quebrado")
	}
	return p.FileProcessor.ProcessFile(content, filename)
}

func TestService_ProcessBatch_PanicBecomesFileAlert(t *testing.T) {
	svc := NewService(
		panickingProcessor{FileProcessor: normalizing.NewService(), filename: "quebrado.xlsx"},
		nil,
		config.Processing{OverlapPct: 72, MaxConcurrentFiles: 2},
	)

	result, err := svc.ProcessBatch(context.Background(), BatchRequest{
		Files: []domain.UploadedFile{
			{Filename: "quebrado.xlsx", Content: []byte("qualquer coisa")},
			googleFile(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRows)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.SeverityError, result.Alerts[0].Severity)
	assert.Equal(t, "quebrado.xlsx", result.Alerts[0].Source)
	assert.Equal(t, "No se pudo leer el archivo: error inesperado (decoder quebrado)", result.Alerts[0].Message)
}

func TestService_ProcessBatch_CampaignFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(ctrl)

	invierno := "MARCA:VISA_CAMPANA:Invierno_ETAPA:Awareness_COMPRA:CPM_COM:Promo"
	meta := csvFile("meta.csv",
		metaHeader,
		veranoMeta+","+adSetVideo+",2024-01-01,1000,3000,10,3,30,300",
		invierno+","+adSetVideo+",2024-01-01,500,2000,10,4,20,200",
	)
	google := csvFile("google.csv",
		googleHeader,
		"MARCA:VISA_CAMPANA:Invierno_FORMATO:Bumper,Grupo 1,2024-01-01,2000,30,10,400",
	)

	result, err := svc.ProcessBatch(context.Background(), BatchRequest{
		Files:          []domain.UploadedFile{meta, google},
		CampaignFilter: "Verano",
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, veranoMeta, result.Rows[0].Campana)
	assert.Equal(t, []domain.Platform{domain.PlatformMeta}, result.Platforms)
	assert.Empty(t, result.Alerts)
}

func TestService_ProcessBatch_History(t *testing.T) {
	t.Run("Falha de leitura do histórico vira alerta ERROR", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo := newTestService(ctrl)
		mockRepo.EXPECT().
			GetLatestByCampaign("verano", domain.MinComparableSchemaVersion).
			Return(nil, errors.New("timeout"))
		mockRepo.EXPECT().Save(gomock.Any()).Return(nil)

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			CampaignID: "verano",
			Files:      []domain.UploadedFile{metaFile("10")},
		})
		require.NoError(t, err)

		require.Len(t, result.Alerts, 1)
		assert.Equal(t, domain.SeverityError, result.Alerts[0].Severity)
		assert.Equal(t, domain.AlertSourceHistory, result.Alerts[0].Source)
		assert.True(t, strings.HasPrefix(result.Alerts[0].Message, "No se pudo leer el historial de la campana: "))
	})

	t.Run("Falha ao salvar o histórico vira alerta ERROR", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo := newTestService(ctrl)
		mockRepo.EXPECT().
			GetLatestByCampaign("verano", domain.MinComparableSchemaVersion).
			Return(nil, nil)
		mockRepo.EXPECT().Save(gomock.Any()).Return(errors.New("read only"))

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			CampaignID: "verano",
			Files:      []domain.UploadedFile{metaFile("10")},
		})
		require.NoError(t, err)

		require.Len(t, result.Alerts, 1)
		assert.True(t, strings.HasPrefix(result.Alerts[0].Message, "No se pudo guardar el historial de la ejecucion: "))
	})

	t.Run("Comparação com a execução anterior", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo := newTestService(ctrl)
		mockRepo.EXPECT().
			GetLatestByCampaign("verano", domain.MinComparableSchemaVersion).
			Return(&domain.HistorySnapshot{
				SchemaVersion: domain.SnapshotSchemaPerCampaign,
				Platforms:     []string{"META", "GOOGLE", "TIKTOK"},
				Totals:        map[string]domain.PlatformTotals{"META": {Spend: 1000, Impressions: 5000}},
			}, nil)
		mockRepo.EXPECT().Save(gomock.Any()).Return(nil)

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			CampaignID: "verano",
			Files:      []domain.UploadedFile{metaFile("30"), googleFile()},
		})
		require.NoError(t, err)

		require.Len(t, result.Alerts, 2)
		assert.Equal(t, domain.SeverityCritical, result.Alerts[0].Severity)
		assert.Equal(t, "PLATAFORMA FALTANTE: TIKTOK estaba en la ejecucion anterior pero no hay datos de ella hoy", result.Alerts[0].Message)
		assert.Equal(t, domain.SeverityWarning, result.Alerts[1].Severity)
		assert.Contains(t, result.Alerts[1].Message, "CAIDA DRASTICA EN META: Gasto cayo 91%")
	})

	t.Run("Snapshot legado é ignorado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo := newTestService(ctrl)
		mockRepo.EXPECT().
			GetLatestByCampaign("verano", domain.MinComparableSchemaVersion).
			Return(&domain.HistorySnapshot{
				SchemaVersion: domain.SnapshotSchemaLegacy,
				Platforms:     []string{"TIKTOK"},
			}, nil)
		mockRepo.EXPECT().Save(gomock.Any()).Return(nil)

		result, err := svc.ProcessBatch(context.Background(), BatchRequest{
			CampaignID: "verano",
			Files:      []domain.UploadedFile{metaFile("10")},
		})
		require.NoError(t, err)
		assert.Empty(t, result.Alerts)
	})
}
