package domain

import (
	"strconv"
	"strings"
)

// CellKind identifica o tipo de valor de uma célula lida do arquivo
type CellKind int

const (
	CellMissing CellKind = iota
	CellString
	CellNumber
)

// Cell é o valor heterogêneo de uma célula: texto, número ou ausente
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

func StringCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return MissingCell()
	}
	return Cell{Kind: CellString, Str: s}
}

func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Num: n}
}

func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// String devolve a representação textual da célula ("" quando ausente)
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// RawTable é a tabela genérica produzida pelo loader, antes do mapeamento de colunas
type RawTable struct {
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex retorna a posição da coluna com o nome exato, ou -1
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Value retorna a célula da linha na coluna indicada, tratando linhas curtas como ausentes
func (t *RawTable) Value(row []Cell, col int) Cell {
	if col < 0 || col >= len(row) {
		return MissingCell()
	}
	return row[col]
}
