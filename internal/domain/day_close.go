package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayCloseBatch marca un cierre de dia; cada fila archivada lleva su id.
type DayCloseBatch struct {
	ID           string
	BusinessDate time.Time
	OrderCount   int
	Total        decimal.Decimal
	ClosedAt     time.Time
}
