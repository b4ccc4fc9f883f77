package reporting

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/internal/usecases/normalizing"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/sirupsen/logrus"
)

type campaignAccumulator struct {
	name      string
	platforms map[domain.Platform]bool
	rows      int
	dates     []time.Time
}

// ScanCampaigns lê os arquivos sem processamento completo, sem alertas e sem
// histórico, e lista as campanhas com nomenclatura encontradas
func (s *Service) ScanCampaigns(paths []string) []domain.CampaignScan {
	var order []string
	campaigns := make(map[string]*campaignAccumulator)

	for _, path := range paths {
		filename := filepath.Base(path)

		content, err := os.ReadFile(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": filename, "error": err}).Warn("Erro ao ler arquivo na pré-análise")
			continue
		}

		table, platform, _, err := s.files.ReadTable(content, filename)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": filename, "error": err}).Warn("Arquivo ignorado na pré-análise")
			continue
		}

		campaignCol := normalizing.FindCampaignColumn(table.Columns)
		if campaignCol < 0 {
			continue
		}
		dateCol := normalizing.FindDateColumn(table.Columns)

		for _, cells := range table.Rows {
			raw := strings.TrimSpace(table.Value(cells, campaignCol).String())
			if raw == "" {
				continue
			}

			parsed := normalizing.ParseNomenclature(raw)
			// nomenclatura legada não identifica campanha
			if len(parsed) == 0 {
				continue
			}

			name := parsed[domain.ColCampana]
			if name == "" {
				name = raw
			}

			acc, ok := campaigns[name]
			if !ok {
				acc = &campaignAccumulator{name: name, platforms: make(map[domain.Platform]bool)}
				campaigns[name] = acc
				order = append(order, name)
			}

			acc.platforms[platform] = true
			acc.rows++

			if dateCol >= 0 {
				if day, ok := normalizing.ParseCellDate(table.Value(cells, dateCol)); ok {
					acc.dates = append(acc.dates, day)
				}
			}
		}
	}

	result := make([]domain.CampaignScan, 0, len(order))
	for _, name := range order {
		acc := campaigns[name]

		scan := domain.CampaignScan{
			Name:      acc.name,
			Platforms: make([]domain.Platform, 0, len(acc.platforms)),
			RowCount:  acc.rows,
		}
		for p := range acc.platforms {
			scan.Platforms = append(scan.Platforms, p)
		}
		sort.Slice(scan.Platforms, func(i, j int) bool { return scan.Platforms[i] < scan.Platforms[j] })

		if len(acc.dates) > 0 {
			minDate, maxDate := acc.dates[0], acc.dates[0]
			for _, d := range acc.dates[1:] {
				if d.Before(minDate) {
					minDate = d
				}
				if d.After(maxDate) {
					maxDate = d
				}
			}
			scan.DateMin = utils.FormatDay(minDate)
			scan.DateMax = utils.FormatDay(maxDate)
		}

		result = append(result, scan)
	}

	return result
}
