package dto

type SalesSummaryResponse struct {
	Date   string                `json:"date"`
	Total  string                `json:"total"`
	Count  int                   `json:"count"`
	Orders []OrderDetailResponse `json:"orders"`
}

type CloseDayRequest struct {
	Confirm bool `json:"confirm"`
}

type CloseDayResponse struct {
	TraceID    string `json:"traceId"`
	Closed     bool   `json:"closed"`
	BatchID    string `json:"batchId,omitempty"`
	OrderCount int    `json:"orderCount"`
	Total      string `json:"total"`
	Message    string `json:"message"`
}

type DayCloseBatchDTO struct {
	ID           string `json:"id"`
	BusinessDate string `json:"businessDate"`
	OrderCount   int    `json:"orderCount"`
	Total        string `json:"total"`
	ClosedAt     string `json:"closedAt"`
}
