package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
}

type AdminLink struct {
	Route       string   `json:"route"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

type AdminPanelResponse struct {
	Title string      `json:"title"`
	Links []AdminLink `json:"links"`
}
