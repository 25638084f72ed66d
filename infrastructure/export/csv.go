package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vfg2006/invoice-control-api/internal/domain"
)

// Cabeçalho do relatório de pendências
const (
	HeaderCompanyName  = "Nome"
	HeaderPendingMonth = "Mês Pendência"
)

const fileNamePattern = "relatorios_pendencias_%s.csv"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configura a escrita do CSV
type Options struct {
	BOMPrefix bool // Adiciona BOM UTF-8 para o Excel reconhecer a acentuação
}

// FileName retorna o nome do arquivo de download para o mês
func FileName(month domain.MonthKey) string {
	return fmt.Sprintf(fileNamePattern, month.String())
}

// WritePendencyCSV escreve uma linha por empresa pendente
func WritePendencyCSV(w io.Writer, report *domain.PendencyReport, opts Options) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("erro ao escrever BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if err := writer.Write([]string{HeaderCompanyName, HeaderPendingMonth}); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
	}

	for i, p := range report.Pendencies {
		if err := writer.Write([]string{p.CompanyName, p.PendingMonth.String()}); err != nil {
			return fmt.Errorf("erro ao escrever linha %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// PendencyCSV retorna o conteúdo do relatório em memória
func PendencyCSV(report *domain.PendencyReport, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePendencyCSV(&buf, report, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
