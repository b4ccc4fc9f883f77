package domain

// Platform identifica a plataforma de mídia que gerou o arquivo
type Platform string

const (
	PlatformMeta    Platform = "META"
	PlatformGoogle  Platform = "GOOGLE"
	PlatformTikTok  Platform = "TIKTOK"
	PlatformUnknown Platform = "DESCONOCIDO"
)

// Platforms retorna as plataformas conhecidas na ordem usada para desempate
func Platforms() []Platform {
	return []Platform{PlatformMeta, PlatformGoogle, PlatformTikTok}
}

// ReportsReach indica se a plataforma informa alcance por conjunto de anúncios
func (p Platform) ReportsReach() bool {
	return p == PlatformMeta || p == PlatformTikTok
}
