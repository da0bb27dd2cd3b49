package dto

type SubmitOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	PaymentMethod string             `json:"paymentMethod"`
	DeliveryType  string             `json:"deliveryType"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductID uint   `json:"productId"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

type SubmitOrderResponse struct {
	TraceID  string                   `json:"traceId"`
	OrderID  uint                     `json:"orderId"`
	Code     string                   `json:"code"`
	Total    string                   `json:"total"`
	Message  string                   `json:"message"`
	Transfer *TransferDetailsResponse `json:"transfer,omitempty"`
}

type TransferDetailsResponse struct {
	Bank          string `json:"bank"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
}

type CustomerDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderLineDTO struct {
	ProductID     uint    `json:"productId"`
	ProductName   string  `json:"productName"`
	CategoryLabel string  `json:"categoryLabel"`
	Quantity      int     `json:"quantity"`
	Price         string  `json:"price"`
	Subtotal      string  `json:"subtotal"`
	Note          *string `json:"note,omitempty"`
}

type OrderDetailResponse struct {
	ID                 uint           `json:"id"`
	Code               string         `json:"code"`
	Status             string         `json:"status"`
	StatusLabel        string         `json:"statusLabel"`
	PaymentMethod      string         `json:"paymentMethod"`
	PaymentMethodLabel string         `json:"paymentMethodLabel"`
	DeliveryType       string         `json:"deliveryType"`
	DeliveryTypeLabel  string         `json:"deliveryTypeLabel"`
	Address            *string        `json:"address"`
	Phone              *string        `json:"phone"`
	Total              string         `json:"total"`
	Date               string         `json:"date"`
	Customer           CustomerDTO    `json:"customer"`
	Lines              []OrderLineDTO `json:"lines"`
}

type OrderListResponse struct {
	Orders []OrderDetailResponse `json:"orders"`
}
