package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/config"
	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/sirupsen/logrus"
)

type Service struct {
	files              normalizing.FileProcessor
	history            *HistoryComparator
	overlapPct         int
	maxConcurrentFiles int
}

func NewService(
	files normalizing.FileProcessor,
	history *HistoryComparator,
	cfg config.Processing,
) Reporter {
	maxConcurrent := cfg.MaxConcurrentFiles
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &Service{
		files:              files,
		history:            history,
		overlapPct:         cfg.OverlapPct,
		maxConcurrentFiles: maxConcurrent,
	}
}

type fileOutcome struct {
	result *domain.FileResult
	err    error
}

// ProcessBatch processa os arquivos de uma execução. Falhas de leitura viram
// alertas ERROR do arquivo; apenas a ausência total de linhas interrompe a execução.
func (s *Service) ProcessBatch(ctx context.Context, req BatchRequest) (*domain.BatchResult, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
		}
		runID = id
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id":      runID,
		"campaign_id": req.CampaignID,
		"files":       len(req.Files),
	})
	logger.Info("Iniciando processamento da execução")

	outcomes := s.processFiles(ctx, req.Files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.BatchResult{
		RunID:      runID,
		CampaignID: req.CampaignID,
		TotalFiles: len(req.Files),
		Rows:       []domain.ReportRow{},
		Alerts:     []domain.Alert{},
		Platforms:  []domain.Platform{},
	}

	var platformsFound []domain.Platform
	for i, outcome := range outcomes {
		filename := req.Files[i].Filename

		if outcome.err != nil {
			if outcome.result != nil && len(outcome.result.Alerts) > 0 {
				result.Alerts = append(result.Alerts, outcome.result.Alerts...)
			} else {
				result.Alerts = append(result.Alerts, domain.NewAlert(domain.SeverityError, filename, outcome.err.Error()))
			}
			continue
		}

		file := outcome.result
		rows := file.Rows
		if req.CampaignFilter != "" {
			rows = filterByCampaign(rows, req.CampaignFilter)
			if len(rows) == 0 {
				logger.WithField("file", filename).Info("Arquivo sem linhas da campanha selecionada, ignorando")
				continue
			}
		}

		result.Alerts = append(result.Alerts, file.Alerts...)
		if len(rows) == 0 {
			continue
		}

		result.Rows = append(result.Rows, rows...)
		platformsFound = append(platformsFound, file.Platform)
	}

	if len(result.Rows) == 0 {
		logger.Warn("Nenhum arquivo gerou linhas")
		return nil, ErrNoFilesProcessed
	}

	result.TotalRows = len(result.Rows)
	result.Platforms = uniquePlatforms(platformsFound)

	result.Alerts = append(result.Alerts, s.compareWithHistory(req.CampaignID, result.Platforms, result.Rows)...)
	result.Alerts = append(result.Alerts, CheckEmptyFields(result.Rows)...)

	result.Reach = CalculateDeduplicatedReach(result.Rows, s.overlapPct)
	result.CampaignInfo = ExtractCampaignInfo(result.Rows)

	if req.CampaignID != "" {
		if err := s.history.SaveSnapshot(req.CampaignID, runID, result.Platforms, result.Rows); err != nil {
			logger.WithError(err).Error("Erro ao salvar histórico da execução")
			result.Alerts = append(result.Alerts, historyAlert(domain.SeverityError,
				fmt.Sprintf("No se pudo guardar el historial de la ejecucion: %v", err)))
		}
	}

	logger.WithFields(logrus.Fields{
		"rows":      result.TotalRows,
		"platforms": result.Platforms,
		"alerts":    len(result.Alerts),
		"duration":  time.Since(startTime).String(),
	}).Info("Processamento da execução concluído")

	return result, nil
}

// processFiles processa os arquivos em paralelo, limitado por maxConcurrentFiles,
// e devolve os resultados na ordem de envio
func (s *Service) processFiles(ctx context.Context, files []domain.UploadedFile) []fileOutcome {
	outcomes := make([]fileOutcome, len(files))

	// Criar um canal para controlar o número de workers concorrentes
	semaphore := make(chan struct{}, s.maxConcurrentFiles)
	var wg sync.WaitGroup

	for i, file := range files {
		if ctx.Err() != nil {
			outcomes[i] = fileOutcome{err: ctx.Err()}
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(idx int, f domain.UploadedFile) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			outcomes[idx] = s.processFile(f)
		}(i, file)
	}

	// Aguardar todos os workers terminarem
	wg.Wait()

	return outcomes
}

// processFile isola o pânico de um arquivo, que vira erro apenas daquele arquivo
func (s *Service) processFile(f domain.UploadedFile) (outcome fileOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"file":  f.Filename,
				"panic": r,
			}).Error("Pânico ao processar arquivo")
			outcome = fileOutcome{err: fmt.Errorf("No se pudo leer el archivo: error inesperado (%v)", r)}
		}
	}()

	result, err := s.files.ProcessFile(f.Content, f.Filename)
	return fileOutcome{result: result, err: err}
}

// compareWithHistory roda as verificações históricas. Falhas no armazenamento
// viram alerta ERROR e não interrompem a execução.
func (s *Service) compareWithHistory(campaignID string, platforms []domain.Platform, rows []domain.ReportRow) []domain.Alert {
	if campaignID == "" {
		return nil
	}

	previous, err := s.history.GetLastSnapshot(campaignID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"error":       err,
		}).Error("Erro ao buscar histórico da campanha")

		return []domain.Alert{historyAlert(domain.SeverityError,
			fmt.Sprintf("No se pudo leer el historial de la campana: %v", err))}
	}

	if previous == nil {
		logrus.WithField("campaign_id", campaignID).Info("Campanha sem histórico comparável")
		return nil
	}

	var alerts []domain.Alert
	alerts = append(alerts, s.history.CheckMissingPlatforms(previous, platforms)...)
	alerts = append(alerts, s.history.CheckHistoricalData(previous, rows)...)
	return alerts
}

// filterByCampaign mantém as linhas cujo nome de exibição da campanha é igual ao filtro
func filterByCampaign(rows []domain.ReportRow, campaign string) []domain.ReportRow {
	filtered := make([]domain.ReportRow, 0, len(rows))
	for _, row := range rows {
		if normalizing.DisplayName(row.Campana) == campaign {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func uniquePlatforms(platforms []domain.Platform) []domain.Platform {
	unique := make([]domain.Platform, 0, len(platforms))
	seen := make(map[domain.Platform]bool)
	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		unique = append(unique, p)
	}
	return unique
}
