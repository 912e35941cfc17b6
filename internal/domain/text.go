package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText recorta espacios y normaliza a NFC, para que "é" compuesto y descompuesto
// cuenten igual en límites de longitud y comparaciones.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
