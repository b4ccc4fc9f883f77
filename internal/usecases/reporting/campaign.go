package reporting

import (
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DefaultCampaignName é usado quando nenhum arquivo traz a tag CAMPANA
const DefaultCampaignName = "Sin Campana"

// DetectCampaign devolve a primeira tag CAMPANA encontrada nos arquivos, na ordem de envio
func (s *Service) DetectCampaign(files []domain.UploadedFile) string {
	for _, f := range files {
		table, _, _, err := s.files.ReadTable(f.Content, f.Filename)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": f.Filename, "error": err}).Debug("Arquivo ignorado na detecção de campanha")
			continue
		}

		if name := normalizing.DetectCampaign(table); name != "" {
			return name
		}
	}

	return DefaultCampaignName
}

// ResolveCampaign escolhe o nome informado ou o detectado e devolve o nome e seu identificador
func (s *Service) ResolveCampaign(name string, files []domain.UploadedFile) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.DetectCampaign(files)
	}
	return name, utils.Slugify(name)
}
