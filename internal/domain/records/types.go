package records

import "time"

type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

type Sale struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	SoldAt     time.Time  `json:"sold_at"`
	Total      float64    `json:"total"`
	Status     SaleStatus `json:"status"`
	Items      []SaleItem `json:"items,omitempty"`
}

type SaleItem struct {
	ID        int64   `json:"id"`
	SaleID    int64   `json:"sale_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceVoided  InvoiceStatus = "voided"
)

type Invoice struct {
	ID       int64         `json:"id"`
	SaleID   int64         `json:"sale_id"`
	Number   string        `json:"number"`
	IssuedAt time.Time     `json:"issued_at"`
	Status   InvoiceStatus `json:"status"`
	Total    float64       `json:"total"`
}
