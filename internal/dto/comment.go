package dto

type CommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type CommentDTO struct {
	ID            uint   `json:"id"`
	Message       string `json:"message"`
	CreatedAt     string `json:"createdAt"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}
