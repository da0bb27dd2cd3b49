package domain

import "time"

// Customer se identifica por correo; se crea la primera vez que aparece.
type Customer struct {
	ID        uint
	Name      string
	Email     string
	CreatedAt time.Time
}
