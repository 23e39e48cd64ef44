package entity

import "time"

// Customer representa un cliente (ventas).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier representa un proveedor (compras).
type Supplier struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
