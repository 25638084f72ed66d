package pendency

import (
	"errors"
	"fmt"
)

// Erros específicos do relatório de pendências
var (
	// Erros de entrada
	ErrInputMissing      = errors.New("nenhuma planilha foi enviada")
	ErrMonthNotSelected  = errors.New("mês de referência não selecionado")
	ErrUnsupportedFile   = errors.New("formato de arquivo não suportado")
	ErrUnreadableFile    = errors.New("não foi possível ler a planilha")
	ErrReportIDGenerator = errors.New("erro ao gerar o identificador do relatório")

	// Erros do histórico
	ErrHistoryDisabled  = errors.New("histórico de relatórios desativado")
	ErrReportNotFound   = errors.New("relatório não encontrado")
	ErrHistoryOperation = errors.New("erro ao consultar o histórico de relatórios")
)

// PendencyError é um erro com contexto adicional para o relatório de pendências
type PendencyError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PendencyError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PendencyError) Unwrap() error {
	return e.Err
}

// NewPendencyError cria um novo PendencyError
func NewPendencyError(err error, code string, details string) *PendencyError {
	return &PendencyError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
