package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	runIDLength   = 10
)

// GenerateRunID gera o identificador curto de uma execução, usado nos logs,
// heartbeats e eventos de transição
func GenerateRunID() (string, error) {
	return gonanoid.Generate(runIDAlphabet, runIDLength)
}
