package normalizing

import (
	"fmt"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/sirupsen/logrus"
)

type FileProcessor interface {
	// ProcessFile executa leitura, mapeamento, enriquecimento e métricas de um arquivo
	ProcessFile(content []byte, filename string) (*domain.FileResult, error)

	// ReadTable lê o arquivo e detecta a plataforma sem gerar alertas
	ReadTable(content []byte, filename string) (*domain.RawTable, domain.Platform, LoadInfo, error)
}

type Service struct {
	loader *Loader
}

func NewService() FileProcessor {
	return &Service{
		loader: NewLoader(),
	}
}

// ProcessFile processa um único arquivo. Em caso de falha de leitura o resultado
// traz o alerta ERROR do arquivo e o erro é devolvido para o chamador.
func (s *Service) ProcessFile(content []byte, filename string) (*domain.FileResult, error) {
	result := &domain.FileResult{
		Filename: filename,
		Platform: domain.PlatformUnknown,
	}

	table, info, err := s.loader.Load(content, filename)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"file":  filename,
			"error": err,
		}).Error("Erro ao ler arquivo")

		result.Alerts = append(result.Alerts, domain.NewAlert(domain.SeverityError, filename, readErrorMessage(filename, err)))
		return result, NewFileError(filename, err)
	}

	platform := DetectPlatform(table.Columns)
	result.Platform = platform
	if platform == domain.PlatformUnknown {
		result.Alerts = append(result.Alerts, domain.NewAlert(
			domain.SeverityWarning,
			filename,
			"No se pudo detectar la plataforma automaticamente",
		))
	}

	mapped, mapAlerts := MapColumns(table, filename, platform)
	result.Alerts = append(result.Alerts, mapAlerts...)

	result.Rows = NewEnricher(platform, info.NumberFormat).BuildRows(mapped)

	logrus.WithFields(logrus.Fields{
		"file":         filename,
		"platform":     platform,
		"format":       info.Format,
		"encoding":     info.Encoding,
		"header_row":   info.HeaderRow,
		"european":     info.European,
		"raw_rows":     len(table.Rows),
		"rows":         len(result.Rows),
		"skipped_rows": info.SkippedRows,
	}).Info("Arquivo processado")

	return result, nil
}

func (s *Service) ReadTable(content []byte, filename string) (*domain.RawTable, domain.Platform, LoadInfo, error) {
	table, info, err := s.loader.Load(content, filename)
	if err != nil {
		return nil, domain.PlatformUnknown, info, NewFileError(filename, err)
	}
	return table, DetectPlatform(table.Columns), info, nil
}

func readErrorMessage(filename string, err error) string {
	if IsCSV(filename) {
		return fmt.Sprintf("No se pudo leer CSV: %v", err)
	}
	return fmt.Sprintf("No se pudo leer el archivo: %v", err)
}
