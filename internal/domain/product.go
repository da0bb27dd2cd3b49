package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Codigos internos de categoria tal como se guardan en Product.category.
const (
	CategoryFood  = "General"
	CategoryDrink = "Bebida"
)

const (
	CategoryLabelFood  = "Comida"
	CategoryLabelDrink = "Bebidas"
	CategoryLabelAll   = "Todas"
)

type Product struct {
	ID          uint
	Name        string
	Description *string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryLabel traduce el codigo interno a la etiqueta que ve el cliente.
// Un codigo desconocido (producto ya borrado) no tiene etiqueta.
func CategoryLabel(code string) string {
	switch code {
	case CategoryFood:
		return CategoryLabelFood
	case CategoryDrink:
		return CategoryLabelDrink
	}
	return ""
}

// ParseCategory acepta el codigo o la etiqueta (con o sin plural) y devuelve el codigo.
func ParseCategory(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "general", "comida":
		return CategoryFood, true
	case "bebida", "bebidas":
		return CategoryDrink, true
	}
	return "", false
}

func (p Product) CategoryLabel() string {
	return CategoryLabel(p.Category)
}
