package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// Sem caracteres ambíguos (0/O, 1/l/I) para o ID ser lido e digitado pelo usuário
const idAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ReportIDLength cabe na coluna id do histórico de relatórios
const ReportIDLength = 12

// GenerateID gera o identificador de um relatório de pendências
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, ReportIDLength)
}
