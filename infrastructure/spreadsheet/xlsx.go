package spreadsheet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoice-control-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// readXLSX lê os valores brutos das células para que datas cheguem como número serial
func readXLSX(r io.Reader, sheetName string) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	sheet := sheets[0]
	if sheetName != "" {
		if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
			return nil, errors.Wrapf(ErrSheetNotFound, "aba %q", sheetName)
		}
		sheet = sheetName
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler aba %q", sheet)
	}

	logrus.WithFields(logrus.Fields{
		"sheet":      sheet,
		"total_rows": len(rows),
	}).Debug("spreadsheet: aba xlsx lida")

	table, err := splitHeader(rows)
	if err != nil {
		return nil, err
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler propriedades da planilha")
	}
	if props.Date1904 != nil {
		table.Date1904 = *props.Date1904
	}

	return table, nil
}
