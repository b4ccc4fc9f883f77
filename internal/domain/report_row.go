package domain

import (
	"strconv"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
)

// Nomes canônicos das colunas normalizadas
const (
	ColMarca       = "MARCA"
	ColPlataforma  = "PLATAFORMA"
	ColCampana     = "CAMPANA"
	ColAdGroup     = "AD GROUP"
	ColEtapa       = "ETAPA"
	ColCompra      = "COMPRA"
	ColCom         = "COM"
	ColFormato     = "FORMATO"
	ColAudiencia   = "AUDIENCIA"
	ColGasto       = "GASTO"
	ColAlcance     = "ALCANCE"
	ColFrecuencia  = "FRECUENCIA"
	ColClics       = "CLICS"
	ColViews       = "VIEWS"
	ColImpresiones = "IMPRESIONES"
	ColCTR         = "CTR"
	ColVTR         = "VTR"
	ColDia         = "DIA"
)

// OutputColumns é a ordem das colunas na exportação
var OutputColumns = []string{
	ColMarca, ColPlataforma, ColCampana, ColAdGroup, ColEtapa, ColCompra,
	ColCom, ColFormato, ColAudiencia, ColGasto, ColAlcance, ColFrecuencia,
	ColClics, ColViews, ColImpresiones, ColCTR, ColVTR, ColDia,
}

// ReportRow é uma linha do relatório já normalizada. Day é sempre uma data válida.
type ReportRow struct {
	Marca       string    `json:"MARCA"`
	Plataforma  string    `json:"PLATAFORMA"`
	Campana     string    `json:"CAMPANA"`
	AdGroup     string    `json:"AD GROUP"`
	Etapa       string    `json:"ETAPA"`
	Compra      string    `json:"COMPRA"`
	Com         string    `json:"COM"`
	Formato     string    `json:"FORMATO"`
	Audiencia   string    `json:"AUDIENCIA"`
	Gasto       float64   `json:"GASTO"`
	Alcance     float64   `json:"ALCANCE"`
	Frecuencia  float64   `json:"FRECUENCIA"`
	Clics       float64   `json:"CLICS"`
	Views       float64   `json:"VIEWS"`
	Impresiones float64   `json:"IMPRESIONES"`
	CTR         float64   `json:"CTR"`
	VTR         float64   `json:"VTR"`
	Day         time.Time `json:"-"`
	Dia         string    `json:"DIA"`
}

// SetDay define a data da linha e sua representação dd/mm/yy
func (r *ReportRow) SetDay(day time.Time) {
	r.Day = utils.TruncateDay(day)
	r.Dia = utils.FormatDay(r.Day)
}

// Field retorna o valor textual de um campo de metadados pelo nome da coluna
func (r *ReportRow) Field(name string) string {
	switch name {
	case ColMarca:
		return r.Marca
	case ColPlataforma:
		return r.Plataforma
	case ColCampana:
		return r.Campana
	case ColAdGroup:
		return r.AdGroup
	case ColEtapa:
		return r.Etapa
	case ColCompra:
		return r.Compra
	case ColCom:
		return r.Com
	case ColFormato:
		return r.Formato
	case ColAudiencia:
		return r.Audiencia
	case ColDia:
		return r.Dia
	}
	return ""
}

// SetField altera um campo de metadados pelo nome da coluna
func (r *ReportRow) SetField(name, value string) {
	switch name {
	case ColMarca:
		r.Marca = value
	case ColPlataforma:
		r.Plataforma = value
	case ColCampana:
		r.Campana = value
	case ColAdGroup:
		r.AdGroup = value
	case ColEtapa:
		r.Etapa = value
	case ColCompra:
		r.Compra = value
	case ColCom:
		r.Com = value
	case ColFormato:
		r.Formato = value
	case ColAudiencia:
		r.Audiencia = value
	}
}

// Record devolve a linha na ordem de OutputColumns
func (r *ReportRow) Record() []string {
	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return []string{
		r.Marca, r.Plataforma, r.Campana, r.AdGroup, r.Etapa, r.Compra,
		r.Com, r.Formato, r.Audiencia, f(r.Gasto), f(r.Alcance), f(r.Frecuencia),
		f(r.Clics), f(r.Views), f(r.Impresiones), f(r.CTR), f(r.VTR), r.Dia,
	}
}
