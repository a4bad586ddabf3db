package ports

import (
	"context"
	"time"

	"ventia/internal/domain/dialog"
	"ventia/internal/domain/records"
)

type CustomerRepository interface {
	Create(ctx context.Context, c records.Customer) (records.Customer, error)
	List(ctx context.Context) ([]records.Customer, error)
	Search(ctx context.Context, query string) ([]records.Customer, error)
	GetByID(ctx context.Context, id int64) (records.Customer, error)
	Update(ctx context.Context, id int64, fields map[string]any) (records.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, p records.Product) (records.Product, error)
	List(ctx context.Context) ([]records.Product, error)
	Search(ctx context.Context, query string) ([]records.Product, error)
	GetByID(ctx context.Context, id int64) (records.Product, error)
	Update(ctx context.Context, id int64, fields map[string]any) (records.Product, error)
	Delete(ctx context.Context, id int64) error
}

type SaleRepository interface {
	Create(ctx context.Context, s records.Sale) (records.Sale, error)
	List(ctx context.Context) ([]records.Sale, error)
	GetByID(ctx context.Context, id int64) (records.Sale, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv records.Invoice) (records.Invoice, error)
	List(ctx context.Context) ([]records.Invoice, error)
	GetBySaleID(ctx context.Context, saleID int64) (records.Invoice, error)
}

// SessionRepository persists conversational state. SaveWithVersion must
// reject a write whose expectedVersion no longer matches the stored row
// with ErrConflict; expectedVersion 0 means "create".
type SessionRepository interface {
	GetByID(ctx context.Context, sessionID string) (dialog.Session, error)
	SaveWithVersion(ctx context.Context, session dialog.Session, expectedVersion int64) error
}

type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

type TurnRecord struct {
	SessionID  string        `json:"session_id"`
	Role       TurnRole      `json:"role"`
	Message    string        `json:"message"`
	Status     dialog.Status `json:"status,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type TurnRepository interface {
	Append(ctx context.Context, turns []TurnRecord) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
}
