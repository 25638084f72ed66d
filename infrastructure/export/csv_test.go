package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/invoice-control-api/internal/domain"
)

func reportFor(month domain.MonthKey, companies ...string) *domain.PendencyReport {
	report := &domain.PendencyReport{SelectedMonth: month}
	for _, c := range companies {
		report.Pendencies = append(report.Pendencies, domain.PendencyRecord{CompanyName: c, PendingMonth: month})
	}
	return report
}

func TestFileName(t *testing.T) {
	month := domain.MonthKey{Year: 2024, Month: time.March}
	assert.Equal(t, "relatorios_pendencias_2024-03.csv", FileName(month))
}

func TestWritePendencyCSV(t *testing.T) {
	month := domain.MonthKey{Year: 2024, Month: time.February}

	content, err := PendencyCSV(reportFor(month, "Acme", "Beta, Filial Sul"), Options{})
	require.NoError(t, err)

	expected := "Nome,Mês Pendência\nAcme,2024-02\n\"Beta, Filial Sul\",2024-02\n"
	assert.Equal(t, expected, string(content))
}

func TestWritePendencyCSV_EmptyReportHasHeaderOnly(t *testing.T) {
	content, err := PendencyCSV(reportFor(domain.MonthKey{Year: 2024, Month: time.January}), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Nome,Mês Pendência\n", string(content))
}

func TestWritePendencyCSV_BOM(t *testing.T) {
	content, err := PendencyCSV(reportFor(domain.MonthKey{Year: 2024, Month: time.January}, "Acme"), Options{BOMPrefix: true})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))
}

func TestWritePendencyCSV_RoundTrip(t *testing.T) {
	month := domain.MonthKey{Year: 2023, Month: time.December}
	report := reportFor(month, "Acme", "Beta \"Matriz\"", "Clínica São José", "Delta\nLtda")

	content, err := PendencyCSV(report, Options{})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(report.Pendencies)+1)
	assert.Equal(t, []string{HeaderCompanyName, HeaderPendingMonth}, records[0])

	names := make(map[string]struct{})
	for _, rec := range records[1:] {
		names[rec[0]] = struct{}{}
		assert.Equal(t, "2023-12", rec[1])
	}

	expected := make(map[string]struct{})
	for _, name := range report.CompanyNames() {
		expected[name] = struct{}{}
	}
	assert.Equal(t, expected, names)
}
