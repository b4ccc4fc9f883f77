package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/reporting"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/apiErrors"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/log"
)

type campaignResponse struct {
	Name string `json:"nombre"`
	ID   string `json:"id"`
}

// processResponse é o relatório unificado devolvido ao front
type processResponse struct {
	RunID        string               `json:"run_id"`
	Campaign     campaignResponse     `json:"campana"`
	TotalFiles   int                  `json:"total_files"`
	TotalRows    int                  `json:"total_rows"`
	Platforms    []domain.Platform    `json:"platforms"`
	Alerts       []domain.Alert       `json:"alerts"`
	AlertCounts  domain.AlertCounts   `json:"alert_counts"`
	Reach        *domain.ReachSummary `json:"alcance_dedup"`
	CampaignInfo domain.CampaignInfo  `json:"info_campana"`
	Columns      []string             `json:"columns"`
	Rows         [][]string           `json:"rows"`
}

func newProcessResponse(campaignName string, result *domain.BatchResult) processResponse {
	rows := make([][]string, 0, len(result.Rows))
	for i := range result.Rows {
		rows = append(rows, result.Rows[i].Record())
	}

	return processResponse{
		RunID:        result.RunID,
		Campaign:     campaignResponse{Name: campaignName, ID: result.CampaignID},
		TotalFiles:   result.TotalFiles,
		TotalRows:    result.TotalRows,
		Platforms:    result.Platforms,
		Alerts:       domain.SortAlerts(result.Alerts),
		AlertCounts:  domain.CountAlerts(result.Alerts),
		Reach:        result.Reach,
		CampaignInfo: result.CampaignInfo,
		Columns:      domain.OutputColumns,
		Rows:         rows,
	}
}

// ProcessReports processa os arquivos enviados e devolve o relatório unificado
func ProcessReports(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		files, err := readUploadedFiles(r)
		if err != nil {
			logger.WithError(err).Warn("reports: upload inválido")
			writeUploadError(w, err)
			return
		}

		campaignName, campaignID := service.ResolveCampaign(r.FormValue("campaign_name"), files)

		logger.WithFields(log.Fields{
			"campaign_name": campaignName,
			"campaign_id":   campaignID,
			"files":         len(files),
		}).Info("reports: processando arquivos")

		result, err := service.ProcessBatch(r.Context(), reporting.BatchRequest{
			CampaignID:     campaignID,
			Files:          files,
			CampaignFilter: r.FormValue("campaign_filter"),
		})
		if err != nil {
			logger.WithError(err).Error("reports: falha ao processar arquivos")

			switch {
			case errors.Is(err, reporting.ErrNoFilesProcessed):
				apiErrors.WriteError(w, apiErrors.ErrNoFilesProcessed, "No se pudo procesar ningun archivo", nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error interno al procesar los archivos", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"run_id":      result.RunID,
			"campaign_id": campaignID,
			"rows":        result.TotalRows,
		}).Info("reports: relatório gerado")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newProcessResponse(campaignName, result)); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ScanCampaigns grava os uploads em um diretório temporário e lista as campanhas encontradas
func ScanCampaigns(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		files, err := readUploadedFiles(r)
		if err != nil {
			logger.WithError(err).Warn("reports: upload inválido na pré-análise")
			writeUploadError(w, err)
			return
		}

		dir, err := os.MkdirTemp("", "reportes-scan-*")
		if err != nil {
			logger.WithError(err).Error("reports: erro ao criar diretório temporário")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error interno al leer los archivos", nil)
			return
		}
		defer os.RemoveAll(dir)

		paths := make([]string, 0, len(files))
		for i, f := range files {
			// prefixo com a posição para arquivos de mesmo nome
			path := filepath.Join(dir, fmt.Sprintf("%02d_%s", i, filepath.Base(f.Filename)))
			if err := os.WriteFile(path, f.Content, 0o600); err != nil {
				logger.WithError(err).Error("reports: erro ao gravar arquivo temporário")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Error interno al leer los archivos", nil)
				return
			}
			paths = append(paths, path)
		}

		campaigns := service.ScanCampaigns(paths)
		logger.WithField("campaigns", len(campaigns)).Info("reports: pré-análise concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"campanas": campaigns}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
