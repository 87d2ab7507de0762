package entity

import "time"

// Address campos estructurados opcionales de dirección.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// User representa el registro local de una identidad externa verificada.
// UID es el subject del proveedor de identidad (único); Email también es único.
// Nunca se borra en los flujos observados; se desactiva con IsActive.
type User struct {
	ID          string
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	Role        Role
	IsActive    bool
	Address     Address
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
