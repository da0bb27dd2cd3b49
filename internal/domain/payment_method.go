package domain

// PaymentMethodInfo son los datos que se muestran para pagar por transferencia.
type PaymentMethodInfo struct {
	Method        string
	Bank          string
	AccountHolder string
	AccountNumber string
}
