package spreadsheet

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/invoice-control-api/internal/domain"
)

var (
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado (use .xlsx ou .csv)")
	ErrEmptySheet        = errors.New("planilha vazia")
	ErrSheetNotFound     = errors.New("aba não encontrada na planilha")
)

// Options configura a leitura das planilhas
type Options struct {
	SheetName string // Vazio usa a primeira aba
}

// Reader lê uma planilha enviada pelo usuário
type Reader interface {
	Read(fileName string, r io.Reader) (*domain.RawTable, error)
}

type reader struct {
	opts Options
}

func NewReader(opts Options) Reader {
	return &reader{opts: opts}
}

// Read escolhe o leitor pela extensão do arquivo
func (rd *reader) Read(fileName string, r io.Reader) (*domain.RawTable, error) {
	var (
		table *domain.RawTable
		err   error
	)

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		table, err = readXLSX(r, rd.opts.SheetName)
	case ".csv":
		table, err = readCSV(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "arquivo %q", fileName)
	}
	if err != nil {
		return nil, err
	}

	table.Source = fileName
	return table, nil
}

// splitHeader usa a primeira linha não vazia como cabeçalho
func splitHeader(rows [][]string) (*domain.RawTable, error) {
	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		header := make([]string, len(row))
		for j, name := range row {
			header[j] = strings.TrimSpace(name)
		}

		return &domain.RawTable{
			HeaderLine: i + 1,
			Header:     header,
			Rows:       rows[i+1:],
		}, nil
	}

	return nil, ErrEmptySheet
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
