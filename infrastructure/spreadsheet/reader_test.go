package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook monta uma planilha xlsx em memória com as linhas informadas a partir de A1
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" {
		require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	} else {
		sheet = f.GetSheetName(0)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRead_XLSX(t *testing.T) {
	content := buildWorkbook(t, "Notas", [][]interface{}{
		{"Nome", "Fase do negócio", "Data Recebimento"},
		{"Acme", "NF Enviadas", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Beta", "Draft", "2024-02-10"},
	})

	table, err := NewReader(Options{}).Read("notas.xlsx", bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "notas.xlsx", table.Source)
	assert.Equal(t, 1, table.HeaderLine)
	assert.Equal(t, []string{"Nome", "Fase do negócio", "Data Recebimento"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Acme", table.Rows[0][0])
	assert.True(t, strings.HasPrefix(table.Rows[0][2], "45306"), "data deve chegar como número serial: %s", table.Rows[0][2])
	assert.Equal(t, "2024-02-10", table.Rows[1][2])
	assert.False(t, table.Date1904)
}

func TestRead_XLSXDate1904(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	date1904 := true
	require.NoError(t, f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}))

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Nome", "Fase do negócio", "Data Recebimento"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Acme", "NF Enviadas", 43844}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := NewReader(Options{}).Read("notas.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.True(t, table.Date1904)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "43844", table.Rows[0][2])
}

func TestRead_XLSXSkipsLeadingBlankRows(t *testing.T) {
	content := buildWorkbook(t, "", [][]interface{}{
		{},
		{"Nome", "Fase do negócio", "Data Recebimento"},
		{"Acme", "NF Enviadas", "2024-01-15"},
	})

	table, err := NewReader(Options{}).Read("notas.XLSX", bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 2, table.HeaderLine)
	assert.Equal(t, "Nome", table.Header[0])
	assert.Len(t, table.Rows, 1)
}

func TestRead_XLSXSheetName(t *testing.T) {
	content := buildWorkbook(t, "Notas", [][]interface{}{
		{"Nome", "Fase do negócio", "Data Recebimento"},
	})

	_, err := NewReader(Options{SheetName: "Outra"}).Read("notas.xlsx", bytes.NewReader(content))
	assert.True(t, errors.Is(err, ErrSheetNotFound))

	table, err := NewReader(Options{SheetName: "Notas"}).Read("notas.xlsx", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestRead_XLSXEmptySheet(t *testing.T) {
	content := buildWorkbook(t, "", nil)

	_, err := NewReader(Options{}).Read("vazia.xlsx", bytes.NewReader(content))
	assert.True(t, errors.Is(err, ErrEmptySheet))
}

func TestRead_InvalidXLSX(t *testing.T) {
	_, err := NewReader(Options{}).Read("notas.xlsx", strings.NewReader("isto não é um xlsx"))
	assert.Error(t, err)
}

func TestRead_CSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Separado por vírgula",
			content: "Nome,Fase do negócio,Data Recebimento\nAcme,NF Enviadas,2024-01-15\n",
		},
		{
			name:    "Separado por ponto e vírgula com BOM",
			content: "\xEF\xBB\xBFNome;Fase do negócio;Data Recebimento\r\nAcme;NF Enviadas;15/01/2024\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewReader(Options{}).Read("notas.csv", strings.NewReader(tt.content))
			require.NoError(t, err)

			assert.Equal(t, []string{"Nome", "Fase do negócio", "Data Recebimento"}, table.Header)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, "Acme", table.Rows[0][0])
		})
	}
}

func TestRead_CSVEmpty(t *testing.T) {
	_, err := NewReader(Options{}).Read("notas.csv", strings.NewReader("  \n"))
	assert.True(t, errors.Is(err, ErrEmptySheet))
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := NewReader(Options{}).Read("notas.pdf", strings.NewReader("%PDF"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
