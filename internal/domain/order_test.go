package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_NullableDeliveryFields(t *testing.T) {
	address := "Calle 5 #12"
	phone := "5512345678"

	delivery := Order{
		ID:            1,
		Code:          "ABC123",
		DeliveryType:  DeliveryHome,
		Address:       &address,
		Phone:         &phone,
		Status:        OrderStatusPending,
		TotalPrice:    decimal.RequireFromString("40.00"),
		PaymentMethod: PaymentCash,
	}
	pickup := Order{
		ID:           2,
		Code:         "XYZ789",
		DeliveryType: DeliveryPickup,
		Status:       OrderStatusCompleted,
	}

	assert.True(t, delivery.IsDelivery())
	assert.True(t, delivery.IsPending())
	assert.Equal(t, &address, delivery.Address)
	assert.False(t, pickup.IsDelivery())
	assert.False(t, pickup.IsPending())
	assert.Nil(t, pickup.Address)
	assert.Nil(t, pickup.Phone)
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{
		ID:        1,
		OrderID:   100,
		ProductID: 5,
		Quantity:  3,
		Price:     decimal.RequireFromString("15.50"),
	}

	assert.True(t, decimal.RequireFromString("46.50").Equal(item.Subtotal()))
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"TRANSFER", PaymentTransfer, true},
		{"Transferencia", PaymentTransfer, true},
		{" efectivo ", PaymentCash, true},
		{"cash", PaymentCash, true},
		{"tarjeta", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePaymentMethod(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDeliveryType(t *testing.T) {
	got, ok := ParseDeliveryType("A domicilio")
	assert.True(t, ok)
	assert.Equal(t, DeliveryHome, got)

	got, ok = ParseDeliveryType("PICKUP")
	assert.True(t, ok)
	assert.Equal(t, DeliveryPickup, got)

	_, ok = ParseDeliveryType("dron")
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Pendiente", OrderStatusLabel(OrderStatusPending))
	assert.Equal(t, "Completado", OrderStatusLabel(OrderStatusCompleted))
	assert.Equal(t, "Transferencia", PaymentLabel(PaymentTransfer))
	assert.Equal(t, "Pasar a recoger", DeliveryLabel(DeliveryPickup))
}

func TestBusinessDay(t *testing.T) {
	mexico, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// 03:00 UTC del 2 de marzo todavia es 1 de marzo en Ciudad de Mexico.
	now := time.Date(2025, 3, 2, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-01", FormatDay(BusinessDay(now, mexico)))
	assert.Equal(t, "2025-03-02", FormatDay(BusinessDay(now, time.UTC)))
	assert.Equal(t, "2025-03-02", FormatDay(BusinessDay(now, nil)))
}
