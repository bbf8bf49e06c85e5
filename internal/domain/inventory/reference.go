package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// MaxSerial es el último consecutivo anual permitido por tipo de movimiento (4 dígitos).
const MaxSerial = 9999

// PrefixFor devuelve el prefijo de referencia del tipo de movimiento.
// Recepciones y despachos comparten AW; un tipo desconocido también cae en AW.
func PrefixFor(moveType string) string {
	switch moveType {
	case entity.MoveTypeINT:
		return "INT"
	case entity.MoveTypeADJ:
		return "ADJ"
	default:
		return "AW"
	}
}

// FormatReference arma la referencia PREFIX/YYYY/NNNN. El formato es estable: lo consumen reportes y auditoría.
func FormatReference(moveType string, year, serial int) (string, error) {
	if serial > MaxSerial {
		return "", fmt.Errorf("%w: %s %d", domain.ErrSerialExhausted, moveType, year)
	}
	if serial < 1 {
		return "", fmt.Errorf("consecutivo inválido %d: %w", serial, domain.ErrInvalidInput)
	}
	return fmt.Sprintf("%s/%04d/%04d", PrefixFor(moveType), year, serial), nil
}

// ParseReference separa una referencia en prefijo, año y consecutivo.
// ok es false salvo que año y consecutivo sean exactamente cuatro dígitos (sin signo).
func ParseReference(ref string) (prefix string, year, serial int, ok bool) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 || parts[0] == "" || !isFourDigits(parts[1]) || !isFourDigits(parts[2]) {
		return "", 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, false
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, false
	}
	return parts[0], y, s, true
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaxSerialIn devuelve el mayor consecutivo de refs que pertenezca al tipo y año dados.
// Referencias mal formadas o de otro prefijo se ignoran.
func MaxSerialIn(moveType string, year int, refs []string) int {
	prefix := PrefixFor(moveType)
	maxSerial := 0
	for _, ref := range refs {
		p, y, s, ok := ParseReference(ref)
		if !ok || p != prefix || y != year {
			continue
		}
		if s > maxSerial {
			maxSerial = s
		}
	}
	return maxSerial
}

// GenerateReference calcula la siguiente referencia a partir de las existentes (regla de escaneo).
// La asignación concurrente segura la hace el contador persistido; esta función fija la regla.
func GenerateReference(moveType string, year int, existing []string) (string, error) {
	return FormatReference(moveType, year, MaxSerialIn(moveType, year, existing)+1)
}
