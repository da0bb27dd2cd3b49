package dto

import "github.com/shopspring/decimal"

type ProductDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Price         string  `json:"price"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"categoryLabel"`
}

type MenuCategoryDTO struct {
	Label    string       `json:"label"`
	Products []ProductDTO `json:"products"`
}

type MenuResponse struct {
	Categories []string          `json:"categories"`
	Selected   string            `json:"selected"`
	Groups     []MenuCategoryDTO `json:"groups"`
}

type GuisadoDTO struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Availability      string  `json:"availability"`
	AvailabilityLabel string  `json:"availabilityLabel"`
	Date              string  `json:"date"`
}

type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
}

type GuisadoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AvailabilityRequest struct {
	Availability string `json:"availability"`
}
