package domain

import "time"

// RawTable representa uma planilha lida sem nenhuma interpretação das colunas
type RawTable struct {
	Source     string     `json:"source"`
	HeaderLine int        `json:"header_line"` // Linha do cabeçalho na planilha (1-based)
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
	Date1904   bool       `json:"date_1904"` // Planilha xlsx salva no sistema de datas de 1904
}

// InvoiceRecord representa uma linha da planilha de notas emitidas
type InvoiceRecord struct {
	Row           int               `json:"row"` // Linha na planilha de origem (1 = cabeçalho)
	CompanyName   string            `json:"company_name"`
	BusinessStage string            `json:"business_stage"`
	ReceivedDate  time.Time         `json:"received_date"`
	Columns       map[string]string `json:"columns"` // Todas as colunas originais da linha
}

// Month retorna o mês de referência da nota
func (r InvoiceRecord) Month() MonthKey {
	return MonthOf(r.ReceivedDate)
}

// InvoiceTable é a planilha já filtrada pelo Loader
type InvoiceTable struct {
	Header  []string        `json:"header"`
	Records []InvoiceRecord `json:"records"`
}

// InvoicePreview é a resposta da pré-visualização da planilha carregada
type InvoicePreview struct {
	Source          string          `json:"source"`
	Header          []string        `json:"header"`
	Invoices        []InvoiceRecord `json:"invoices"`
	AvailableMonths []MonthKey      `json:"available_months"`
	Total           int             `json:"total"`
}
