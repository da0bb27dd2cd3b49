package domain

import "time"

type Comment struct {
	ID         uint
	CustomerID uint
	Message    string
	CreatedAt  time.Time
}

type CommentWithCustomer struct {
	Comment
	CustomerName  string
	CustomerEmail string
}
