package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
)

const (
	PaymentTransfer = "TRANSFER"
	PaymentCash     = "CASH"
)

const (
	DeliveryHome   = "DELIVERY"
	DeliveryPickup = "PICKUP"
)

const OrderCodeLength = 6

var (
	orderStatusLabels = map[string]string{
		OrderStatusPending:   "Pendiente",
		OrderStatusCompleted: "Completado",
	}
	paymentLabels = map[string]string{
		PaymentTransfer: "Transferencia",
		PaymentCash:     "Efectivo",
	}
	deliveryLabels = map[string]string{
		DeliveryHome:   "A domicilio",
		DeliveryPickup: "Pasar a recoger",
	}
)

type Order struct {
	ID            uint
	Code          string
	CustomerID    uint
	PaymentMethod string
	DeliveryType  string
	Address       *string
	Phone         *string
	TotalPrice    decimal.Decimal
	Status        string
	Date          time.Time
	CreatedAt     time.Time
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
	Note      *string
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine es un renglon con los datos del producto, para lectura.
type OrderLine struct {
	OrderItem
	ProductName     string
	ProductCategory string
}

// OrderDetail es un pedido con su cliente y sus renglones.
type OrderDetail struct {
	Order
	Customer Customer
	Lines    []OrderLine
}

func (o Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

func (o Order) IsDelivery() bool {
	return o.DeliveryType == DeliveryHome
}

func OrderStatusLabel(status string) string {
	return orderStatusLabels[status]
}

func PaymentLabel(method string) string {
	return paymentLabels[method]
}

func DeliveryLabel(deliveryType string) string {
	return deliveryLabels[deliveryType]
}

func ParsePaymentMethod(value string) (string, bool) {
	return parseLabeled(value, paymentLabels)
}

func ParseDeliveryType(value string) (string, bool) {
	return parseLabeled(value, deliveryLabels)
}

func parseLabeled(value string, labels map[string]string) (string, bool) {
	for code, label := range labels {
		if equalFold(value, code) || equalFold(value, label) {
			return code, true
		}
	}
	return "", false
}
