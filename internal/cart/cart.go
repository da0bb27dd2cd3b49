package cart

import (
	"github.com/shopspring/decimal"

	"fonda/internal/domain"
)

type Entry struct {
	Product  domain.Product
	Quantity int
	Note     string
}

func (e Entry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart mantiene el orden de insercion y a lo mas una entrada por producto.
// No es seguro para uso concurrente.
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// Add suma uno a la cantidad si el producto ya esta; si no, lo agrega con cantidad 1.
func (c *Cart) Add(p domain.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.entries[i].Quantity++
		return
	}
	c.entries = append(c.entries, Entry{Product: p, Quantity: 1})
}

func (c *Cart) Remove(productID uint) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

// SetQuantity ignora valores menores a 1 y productos ausentes. Reporta si hubo cambio.
func (c *Cart) SetQuantity(productID uint, quantity int) bool {
	if quantity < 1 {
		return false
	}
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.entries[i].Quantity = quantity
	return true
}

func (c *Cart) SetNote(productID uint, note string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.entries[i].Note = note
	return true
}

// Total no redondea; el redondeo a 2 decimales es solo de presentacion.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Quantity(productID uint) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}

func (c *Cart) Len() int {
	return len(c.entries)
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) indexOf(productID uint) int {
	for i, e := range c.entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}
