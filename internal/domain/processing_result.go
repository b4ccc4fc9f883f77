package domain

// UploadedFile é o conteúdo bruto de um arquivo enviado
type UploadedFile struct {
	Filename string
	Content  []byte
}

// FileResult é o resultado do processamento de um único arquivo
type FileResult struct {
	Filename string      `json:"filename"`
	Platform Platform    `json:"platform"`
	Rows     []ReportRow `json:"-"`
	Alerts   []Alert     `json:"alerts"`
}

// CampaignInfo é a identificação da campanha extraída do conjunto unificado
type CampaignInfo struct {
	Title        string `json:"titulo"`
	Brand        string `json:"marca"`
	BrandDisplay string `json:"marca_display"`
}

// BatchResult é o resultado de uma execução completa
type BatchResult struct {
	RunID        string        `json:"run_id"`
	CampaignID   string        `json:"campaign_id"`
	TotalFiles   int           `json:"total_files"`
	TotalRows    int           `json:"total_rows"`
	Platforms    []Platform    `json:"platforms"`
	Rows         []ReportRow   `json:"-"`
	Alerts       []Alert       `json:"alerts"`
	Reach        *ReachSummary `json:"alcance_dedup"`
	CampaignInfo CampaignInfo  `json:"info_campana"`
}

// CampaignScan resume uma campanha detectada sem processamento completo
type CampaignScan struct {
	Name      string     `json:"nombre"`
	Platforms []Platform `json:"plataformas"`
	RowCount  int        `json:"filas"`
	DateMin   string     `json:"fecha_min,omitempty"`
	DateMax   string     `json:"fecha_max,omitempty"`
}
