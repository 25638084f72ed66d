package loading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema indica que a planilha não tem o formato esperado
var ErrSchema = errors.New("planilha fora do formato esperado")

// SchemaError descreve por que a planilha foi rejeitada
type SchemaError struct {
	Missing []string // Colunas obrigatórias ausentes
	Row     int      // Linha com data inválida (quando aplicável)
	Column  string
	Value   string
}

// Error implementa a interface error
func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: colunas ausentes: %s", ErrSchema.Error(), strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: linha %d, coluna %q com valor inválido %q", ErrSchema.Error(), e.Row, e.Column, e.Value)
}

// Unwrap permite errors.Is(err, ErrSchema)
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
