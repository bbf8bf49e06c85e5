package inventory

import "github.com/shopspring/decimal"

// QuantityScale decimales que se persisten en cantidades y existencias (NUMERIC(18, 4)).
const QuantityScale = 4

// maxQuantity 10^14: 18 dígitos de precisión menos 4 de escala.
var maxQuantity = decimal.New(1, 14)

// FitsQuantity indica si q se almacena sin redondeo ni desborde en NUMERIC(18, 4).
func FitsQuantity(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(QuantityScale)) && q.Abs().LessThan(maxQuantity)
}
