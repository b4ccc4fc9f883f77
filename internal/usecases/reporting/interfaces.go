package reporting

import (
	"context"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
)

// Reporter é a interface consumida pela camada HTTP
type Reporter interface {
	// ProcessBatch processa todos os arquivos de uma execução e devolve o conjunto unificado
	ProcessBatch(ctx context.Context, req BatchRequest) (*domain.BatchResult, error)

	// ScanCampaigns faz uma leitura rápida dos arquivos para listar as campanhas encontradas
	ScanCampaigns(paths []string) []domain.CampaignScan

	// ResolveCampaign devolve o nome da campanha (informado ou detectado) e o id usado no histórico
	ResolveCampaign(name string, files []domain.UploadedFile) (string, string)
}

// BatchRequest agrupa os arquivos e o contexto de campanha de uma execução
type BatchRequest struct {
	CampaignID     string
	RunID          string
	Files          []domain.UploadedFile
	CampaignFilter string
}
