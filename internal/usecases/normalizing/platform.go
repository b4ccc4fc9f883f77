package normalizing

import (
	"strings"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

// platformKeywords são as assinaturas de cabeçalho de cada plataforma
var platformKeywords = map[domain.Platform][]string{
	domain.PlatformMeta: {
		"thruplays", "thru plays", "frecuencia", "alcance", "nombre del conjunto de anuncios",
	},
	domain.PlatformGoogle: {
		"visualizaciones de trueview", "trueview",
	},
	domain.PlatformTikTok: {
		"6-second video views", "2-second video views", "video views at 25%",
		"video views at 50%", "paid likes", "paid shares", "paid comments",
		"6-second focused views", "15-second focused views",
	},
}

// DetectPlatform pontua os cabeçalhos contra as assinaturas de cada plataforma.
// Em caso de empate vence a primeira na ordem META, GOOGLE, TIKTOK.
func DetectPlatform(columns []string) domain.Platform {
	normalized := make([]string, 0, len(columns))
	for _, col := range columns {
		normalized = append(normalized, utils.Normalize(col))
	}
	text := strings.Join(normalized, " ")

	best := domain.PlatformUnknown
	bestScore := 0
	for _, platform := range domain.Platforms() {
		score := 0
		for _, kw := range platformKeywords[platform] {
			if strings.Contains(text, utils.Normalize(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = platform
			bestScore = score
		}
	}

	return best
}
