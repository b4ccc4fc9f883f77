package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

// DefaultOverlapPct é a sobreposição usada quando nenhuma é configurada
const DefaultOverlapPct = 80

// NewReachFactor é a fração de alcance considerada nova para uma sobreposição
func NewReachFactor(overlapPct int) float64 {
	return float64(100-overlapPct) / 100
}

// DeduplicateReachList soma o maior alcance com a fração nova dos demais
func DeduplicateReachList(reaches []float64, newReachFactor float64) float64 {
	switch len(reaches) {
	case 0:
		return 0
	case 1:
		return reaches[0]
	}

	sorted := make([]float64, len(reaches))
	copy(sorted, reaches)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	others := 0.0
	for _, r := range sorted[1:] {
		others += r
	}

	return sorted[0] + others*newReachFactor
}

type dayBucket struct {
	date      time.Time
	platforms []string
	reaches   map[string][]float64
}

// CalculateDeduplicatedReach aplica a deduplicação em três níveis: conjuntos de
// anúncios por plataforma no dia, plataformas no dia e acumulado entre dias.
// Só entram linhas de META e TIKTOK com alcance positivo.
func CalculateDeduplicatedReach(rows []domain.ReportRow, overlapPct int) *domain.ReachSummary {
	summary := &domain.ReachSummary{
		OverlapPct:     overlapPct,
		DailyEvolution: []domain.DailyReach{},
	}

	factor := NewReachFactor(overlapPct)
	buckets := make(map[time.Time]*dayBucket)
	impressions := 0.0

	for _, row := range rows {
		platform := strings.ToUpper(strings.TrimSpace(row.Plataforma))
		if !domain.Platform(platform).ReportsReach() || row.Alcance <= 0 {
			continue
		}

		impressions += row.Impresiones

		bucket, ok := buckets[row.Day]
		if !ok {
			bucket = &dayBucket{date: row.Day, reaches: make(map[string][]float64)}
			buckets[row.Day] = bucket
		}
		if _, seen := bucket.reaches[platform]; !seen {
			bucket.platforms = append(bucket.platforms, platform)
		}
		bucket.reaches[platform] = append(bucket.reaches[platform], row.Alcance)
	}

	if len(buckets) == 0 {
		return summary
	}

	days := make([]*dayBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].date.Before(days[j].date)
	})

	accumulated := 0.0
	for i, day := range days {
		daily := domain.DailyReach{Date: day.date.Format(time.DateOnly)}

		platformReaches := make([]float64, 0, len(day.platforms))
		for _, platform := range day.platforms {
			reach := DeduplicateReachList(day.reaches[platform], factor)
			platformReaches = append(platformReaches, reach)
			daily.Platforms = append(daily.Platforms, domain.PlatformReach{Platform: platform, Reach: reach})
		}

		daily.DayReach = DeduplicateReachList(platformReaches, factor)
		summary.DailyEvolution = append(summary.DailyEvolution, daily)

		if i == 0 {
			accumulated = daily.DayReach
			continue
		}
		accumulated += daily.DayReach * factor
	}

	summary.FinalReach = accumulated
	if accumulated > 0 {
		summary.Frequency = utils.RoundWithTwoDecimalPlace(impressions / accumulated)
	}

	return summary
}
