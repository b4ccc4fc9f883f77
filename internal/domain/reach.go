package domain

// PlatformReach é o alcance deduplicado de uma plataforma em um dia
type PlatformReach struct {
	Platform string  `json:"platform"`
	Reach    float64 `json:"reach"`
}

// DailyReach detalha o cálculo de um dia para auditoria
type DailyReach struct {
	Date      string          `json:"date"`
	DayReach  float64         `json:"day_reach"`
	Platforms []PlatformReach `json:"platforms"`
}

type ReachSummary struct {
	FinalReach     float64      `json:"final_reach"`
	Frequency      float64      `json:"frecuencia"`
	OverlapPct     int          `json:"overlap_pct"`
	DailyEvolution []DailyReach `json:"daily_evolution"`
}
