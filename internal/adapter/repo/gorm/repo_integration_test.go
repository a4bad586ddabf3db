package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
	"ventia/internal/domain/records"

	"gorm.io/gorm"
)

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("VENTIA_DB_DSN")
	if dsn == "" {
		t.Skip("VENTIA_DB_DSN is required for integration test")
	}
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestCustomerRepo_CRUDRoundTrip(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := NewCustomerRepo(db)

	created, err := repo.Create(ctx, records.Customer{
		Name:         "it-customer",
		Email:        "it-customer@example.com",
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() { _ = repo.Delete(ctx, created.ID) }()

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "it-customer" {
		t.Fatalf("unexpected customer %+v", got)
	}

	updated, err := repo.Update(ctx, created.ID, map[string]any{"phone": "555-0101"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "555-0101" {
		t.Fatalf("update not applied: %+v", updated)
	}

	found, err := repo.Search(ctx, "it-customer")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) == 0 {
		t.Fatal("search missed the created customer")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSaleRepo_CreateWithItemsInTx(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	customers := NewCustomerRepo(db)
	products := NewProductRepo(db)
	sales := NewSaleRepo(db)
	tx := NewTxManager(db)

	customer, err := customers.Create(ctx, records.Customer{Name: "it-sale-customer", RegisteredAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	defer func() { _ = customers.Delete(ctx, customer.ID) }()

	product, err := products.Create(ctx, records.Product{Name: "it-sale-product", Price: 10, Stock: 5, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	defer func() { _ = products.Delete(ctx, product.ID) }()

	var saleID int64
	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := products.Update(ctx, product.ID, map[string]any{"stock": 3}); err != nil {
			return err
		}
		sale, err := sales.Create(ctx, records.Sale{
			CustomerID: customer.ID,
			SoldAt:     time.Now().UTC(),
			Total:      20,
			Status:     records.SaleCompleted,
			Items: []records.SaleItem{
				{ProductID: product.ID, Quantity: 2, UnitPrice: 10, Subtotal: 20},
			},
		})
		if err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	defer func() {
		_ = db.Exec("DELETE FROM sale_items WHERE sale_id = ?", saleID).Error
		_ = db.Exec("DELETE FROM sales WHERE id = ?", saleID).Error
	}()

	got, err := sales.GetByID(ctx, saleID)
	if err != nil {
		t.Fatalf("get sale: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected sale items %+v", got.Items)
	}
	stocked, err := products.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if stocked.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", stocked.Stock)
	}
}

func TestSessionRepo_VersionGuard(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := NewSessionRepo(db)
	sessionID := "it-session-guard"
	defer func() { _ = db.Exec("DELETE FROM conversation_sessions WHERE session_id = ?", sessionID).Error }()

	session := dialog.NewSession(sessionID, time.Now().UTC())
	session.HoldForConfirmation(dialog.ResolvedAction{
		Intent:               dialog.Intent{Operation: dialog.OpDelete, Kind: dialog.KindCustomer},
		Params:               map[string]string{"id": "4"},
		RequiresConfirmation: true,
		Summary:              "delete customer (id=4)",
	}, time.Now().UTC())
	session.Version = 1
	if err := repo.SaveWithVersion(ctx, session, 0); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.AwaitingConfirmation() || got.Pending == nil {
		t.Fatalf("pending action did not round-trip: %+v", got)
	}
	if got.Pending.Params["id"] != "4" {
		t.Fatalf("pending params lost: %+v", got.Pending)
	}

	got.Touch(time.Now().UTC())
	current := got.Version
	got.Version++
	if err := repo.SaveWithVersion(ctx, got, current); err != nil {
		t.Fatalf("versioned save: %v", err)
	}
	// Stale writer loses.
	if err := repo.SaveWithVersion(ctx, got, current); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale version, got %v", err)
	}
}

func TestTurnRepo_TailIsChronological(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	repo := NewTurnRepo(db)
	sessionID := "it-turn-tail"
	defer func() { _ = db.Exec("DELETE FROM conversation_turns WHERE session_id = ?", sessionID).Error }()

	base := time.Now().UTC().Truncate(time.Second)
	var batch []ports.TurnRecord
	for i := 0; i < 5; i++ {
		batch = append(batch, ports.TurnRecord{
			SessionID:  sessionID,
			Role:       ports.TurnRoleUser,
			Message:    "m",
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	if err := repo.Append(ctx, batch); err != nil {
		t.Fatalf("append: %v", err)
	}

	turns, err := repo.ListBySessionID(ctx, sessionID, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if !turns[0].OccurredAt.Before(turns[2].OccurredAt) {
		t.Fatalf("expected oldest-first tail, got %+v", turns)
	}
}
