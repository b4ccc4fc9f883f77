package normalizing

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/andresaguirresm-cpu/reportes-web/pkg/utils"
	"github.com/pkg/errors"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	csvHeaderScanLines   = 15
	excelHeaderScanRows  = 10
	numberSampleLines    = 4
	minHeaderKeywordHits = 2
)

// headerKeywords identificam a linha de cabeçalho em exportações com linhas de título
var headerKeywords = []string{
	"campana", "campaign", "dia", "day", "clics", "clicks",
	"impresiones", "impressions", "gasto", "cost", "coste", "impr", "fecha", "date",
}

var (
	europeanNumberPattern = regexp.MustCompile(`"[\d.]+,\d{2}"`)
	// vírgula decimal sem aspas, comum em arquivos separados por ponto e vírgula
	decimalCommaPattern = regexp.MustCompile(`\d+,\d{2}\b`)
)

// oleSignature identifica planilhas .xls (contêiner OLE2)
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

type FileFormat string

const (
	FormatCSV   FileFormat = "csv"
	FormatExcel FileFormat = "excel"
)

// LoadInfo descreve o que foi detectado durante a leitura do arquivo
type LoadInfo struct {
	Format       FileFormat
	Encoding     string
	HeaderRow    int
	Delimiter    rune
	European     bool
	NumberFormat utils.NumberFormat
	SkippedRows  int
}

// Loader converte os bytes de um CSV ou Excel em uma RawTable
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load lê o arquivo de acordo com a extensão. Qualquer extensão diferente de
// .csv é tratada como planilha Excel.
func (l *Loader) Load(content []byte, filename string) (*domain.RawTable, LoadInfo, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, LoadInfo{}, ErrEmptyFile
	}

	if IsCSV(filename) {
		return l.loadCSV(content)
	}
	return l.loadExcel(content)
}

// IsCSV indica se o arquivo deve ser lido como CSV
func IsCSV(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return strings.EqualFold(filename[idx+1:], "csv")
}

func (l *Loader) loadCSV(content []byte) (*domain.RawTable, LoadInfo, error) {
	text, encoding := decodeText(content)
	text = strings.TrimPrefix(text, "\ufeff")

	info := LoadInfo{
		Format:       FormatCSV,
		Encoding:     encoding,
		NumberFormat: utils.DefaultNumberFormat,
	}

	lines := strings.Split(text, "\n")
	scan := lines
	if len(scan) > csvHeaderScanLines {
		scan = scan[:csvHeaderScanLines]
	}
	info.HeaderRow = detectHeaderRow(scan)

	info.Delimiter = sniffDelimiter(lines[info.HeaderRow])

	sampleEnd := info.HeaderRow + 1 + numberSampleLines
	if sampleEnd > len(scan) {
		sampleEnd = len(scan)
	}
	if info.HeaderRow+1 < sampleEnd {
		sample := strings.Join(scan[info.HeaderRow+1:sampleEnd], "\n")
		if isEuropeanSample(sample, info.Delimiter) {
			info.European = true
			info.NumberFormat = utils.EuropeanNumberFormat
		}
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[info.HeaderRow:], "\n")))
	reader.Comma = info.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, info, ErrMissingHeaders
	}
	if err != nil {
		return nil, info, errors.Wrap(err, "no se pudo leer el encabezado del CSV")
	}

	table := &domain.RawTable{Columns: uniqueColumns(header)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				info.SkippedRows++
				continue
			}
			return nil, info, errors.Wrap(err, "no se pudo leer el CSV")
		}

		// filas con más campos que el encabezado se descartan
		if len(record) > len(table.Columns) {
			info.SkippedRows++
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		row := make([]domain.Cell, len(table.Columns))
		for i := range row {
			if i < len(record) {
				row[i] = domain.StringCell(strings.TrimSpace(record[i]))
			} else {
				row[i] = domain.MissingCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, info, nil
}

func (l *Loader) loadExcel(content []byte) (*domain.RawTable, LoadInfo, error) {
	info := LoadInfo{
		Format:       FormatExcel,
		Encoding:     "xlsx",
		NumberFormat: utils.DefaultNumberFormat,
	}

	var rows [][]string
	var err error
	if bytes.HasPrefix(content, oleSignature) {
		info.Encoding = "xls"
		rows, err = readLegacySheet(content)
	} else {
		rows, err = readWorkbookSheet(content)
	}
	if err != nil {
		return nil, info, err
	}
	if len(rows) == 0 {
		return nil, info, ErrEmptyFile
	}

	scan := rows
	if len(scan) > excelHeaderScanRows {
		scan = scan[:excelHeaderScanRows]
	}
	lines := make([]string, len(scan))
	for i, row := range scan {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				cells = append(cells, cell)
			}
		}
		lines[i] = strings.Join(cells, " ")
	}
	info.HeaderRow = detectHeaderRow(lines)

	header := rows[info.HeaderRow]
	data := rows[info.HeaderRow+1:]

	// células além do cabeçalho viram colunas "Unnamed: N"
	width := len(header)
	for _, record := range data {
		if len(record) > width {
			width = len(record)
		}
	}
	if width > len(header) {
		header = append(append([]string(nil), header...), make([]string, width-len(header))...)
	}

	table := &domain.RawTable{Columns: uniqueColumns(header)}
	for _, record := range data {
		if isBlankRecord(record) {
			continue
		}

		row := make([]domain.Cell, len(table.Columns))
		for i := range row {
			if i < len(record) {
				row[i] = excelCell(record[i])
			} else {
				row[i] = domain.MissingCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, info, nil
}

// readWorkbookSheet lê a primeira aba de um .xlsx com os valores brutos das células
func readWorkbookSheet(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "no se pudo abrir el archivo Excel")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "no se pudo leer la hoja %s", sheets[0])
	}
	return rows, nil
}

// readLegacySheet lê a primeira aba de um .xls (BIFF). Datas chegam como serial numérico.
func readLegacySheet(content []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = errors.Errorf("no se pudo abrir el archivo Excel: %v", r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "no se pudo abrir el archivo Excel")
	}
	if workbook.GetNumberSheets() == 0 {
		return nil, ErrNoSheets
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, errors.Wrap(err, "no se pudo leer la hoja")
	}

	for _, row := range sheet.GetRows() {
		cols := row.GetCols()
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = col.GetString()
		}
		rows = append(rows, record)
	}

	// descarta linhas vazias do fim da aba
	for len(rows) > 0 && isBlankRecord(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

// isEuropeanSample detecta números como "1.234,56" entre aspas, ou vírgula decimal
// sem aspas quando o separador é ponto e vírgula
func isEuropeanSample(sample string, delimiter rune) bool {
	if europeanNumberPattern.MatchString(sample) {
		return true
	}
	return delimiter == ';' && decimalCommaPattern.MatchString(sample)
}

// detectHeaderRow retorna a primeira linha com pelo menos duas palavras-chave, ou 0
func detectHeaderRow(lines []string) int {
	for i, line := range lines {
		if countHeaderKeywords(line) >= minHeaderKeywordHits {
			return i
		}
	}
	return 0
}

func countHeaderKeywords(line string) int {
	normalized := utils.Normalize(line)
	matches := 0
	for _, kw := range headerKeywords {
		if strings.Contains(normalized, kw) {
			matches++
		}
	}
	return matches
}

// decodeText decodifica o CSV como UTF-8, UTF-16 (com BOM) ou Latin-1
func decodeText(content []byte) (string, string) {
	if bytes.HasPrefix(content, []byte{0xFF, 0xFE}) || bytes.HasPrefix(content, []byte{0xFE, 0xFF}) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if decoded, err := decoder.Bytes(content); err == nil {
			return string(decoded), "utf-16"
		}
	}

	if utf8.Valid(content) {
		return string(content), "utf-8"
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return string(content), "utf-8"
	}
	return string(decoded), "latin-1"
}

// sniffDelimiter escolhe o separador mais frequente na linha de cabeçalho
func sniffDelimiter(headerLine string) rune {
	best := ','
	bestCount := strings.Count(headerLine, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(headerLine, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// uniqueColumns nomeia colunas vazias e diferencia nomes repetidos (x, x.1, x.2)
func uniqueColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}

	return columns
}

func isBlankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// excelCell converte o valor bruto da célula. Apenas decimais finitos viram número;
// textos como "NaN", "Inf" ou hexadecimais permanecem texto.
func excelCell(raw string) domain.Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.MissingCell()
	}
	if strings.ContainsAny(raw, "xXpP") {
		return domain.StringCell(raw)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return domain.NumberCell(n)
	}
	return domain.StringCell(raw)
}
