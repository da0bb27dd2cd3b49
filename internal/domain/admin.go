package domain

type Admin struct {
	ID       uint
	Name     string
	Email    string
	Password string
}
