package dto

import "github.com/shopspring/decimal"

// Money formatea montos para mostrar, siempre con 2 decimales.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
