package model

import "time"

type Customer struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string
	Phone        string
	Address      string
	RegisteredAt time.Time
}

func (Customer) TableName() string { return "customers" }

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64
	Stock       int
	CreatedAt   time.Time
}

func (Product) TableName() string { return "products" }

type Sale struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID int64
	SoldAt     time.Time
	Total      float64
	Status     string
	Items      []SaleItem `gorm:"foreignKey:SaleID"`
}

func (Sale) TableName() string { return "sales" }

type SaleItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

func (SaleItem) TableName() string { return "sale_items" }

type Invoice struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	SaleID   int64  `gorm:"uniqueIndex"`
	Number   string `gorm:"uniqueIndex"`
	IssuedAt time.Time
	Status   string
	Total    float64
}

func (Invoice) TableName() string { return "invoices" }

// ConversationSession stores the gate state. Pending carries the held
// action serialized as JSON, NULL while nothing awaits confirmation.
type ConversationSession struct {
	SessionID    string `gorm:"primaryKey"`
	State        string
	Pending      []byte `gorm:"type:jsonb"`
	LastActiveAt time.Time
	Version      int64
}

func (ConversationSession) TableName() string { return "conversation_sessions" }

type ConversationTurn struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	SessionID  string `gorm:"index"`
	Role       string
	Message    string
	Status     string
	OccurredAt time.Time
}

func (ConversationTurn) TableName() string { return "conversation_turns" }
