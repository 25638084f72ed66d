package loading

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/invoice-control-api/internal/domain"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Colunas obrigatórias da planilha de notas emitidas
const (
	ColumnCompanyName   = "Nome"
	ColumnBusinessStage = "Fase do negócio"
	ColumnReceivedDate  = "Data Recebimento"
)

// DefaultStage é a fase do negócio das notas já enviadas
const DefaultStage = "NF Enviadas"

var requiredColumns = []string{ColumnCompanyName, ColumnBusinessStage, ColumnReceivedDate}

// Maior número serial aceito pelo Excel (31/12/9999)
const maxExcelSerial = 2958465

// compactLayouts são testados antes do número serial, pois também são numéricos
var compactLayouts = []string{
	"20060102",
	"2006",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
	"01-02-06", // Formato curto padrão do Excel (mm-dd-yy)
}

// Load valida as colunas obrigatórias e mantém apenas as linhas na fase informada
func Load(raw *domain.RawTable, stage string) (*domain.InvoiceTable, error) {
	if stage == "" {
		stage = DefaultStage
	}

	columns := indexColumns(raw.Header)

	missing := make([]string, 0)
	for _, name := range requiredColumns {
		if _, ok := columns[normalize(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	nameIdx := columns[normalize(ColumnCompanyName)]
	stageIdx := columns[normalize(ColumnBusinessStage)]
	dateIdx := columns[normalize(ColumnReceivedDate)]

	table := &domain.InvoiceTable{
		Header:  raw.Header,
		Records: make([]domain.InvoiceRecord, 0, len(raw.Rows)),
	}

	headerLine := raw.HeaderLine
	if headerLine < 1 {
		headerLine = 1
	}

	for i, row := range raw.Rows {
		if isBlank(row) {
			continue
		}

		if strings.TrimSpace(cell(row, stageIdx)) != stage {
			continue
		}

		line := headerLine + 1 + i

		value := strings.TrimSpace(cell(row, dateIdx))
		received, ok := ParseDate(value, raw.Date1904)
		if !ok {
			return nil, &SchemaError{Row: line, Column: ColumnReceivedDate, Value: value}
		}

		table.Records = append(table.Records, domain.InvoiceRecord{
			Row:           line,
			CompanyName:   strings.TrimSpace(cell(row, nameIdx)),
			BusinessStage: stage,
			ReceivedDate:  received,
			Columns:       rowColumns(raw.Header, row),
		})
	}

	return table, nil
}

// ParseDate interpreta datas em número serial do Excel ou nos formatos de texto mais comuns.
// date1904 indica que a planilha usa o sistema de datas de 1904.
func ParseDate(value string, date1904 bool) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range compactLayouts {
		if len(value) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(serial) || serial < 1 || serial > maxExcelSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := normalize(name)
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	return columns
}

// normalize trata cabeçalhos gravados em NFD (comum em planilhas exportadas no macOS)
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowColumns(header, row []string) map[string]string {
	columns := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		columns[name] = cell(row, i)
	}
	return columns
}
