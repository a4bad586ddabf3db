package execute

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"ventia/internal/adapter/llm/mock"
	"ventia/internal/adapter/repo/memory"
	"ventia/internal/domain/dialog"
	"ventia/internal/domain/records"
)

func newExecutor(store *memory.Store, llm *mock.Completer) Executor {
	return Executor{
		Customers: memory.NewCustomerRepo(store),
		Products:  memory.NewProductRepo(store),
		Sales:     memory.NewSaleRepo(store),
		Invoices:  memory.NewInvoiceRepo(store),
		Tx:        memory.NewTxManager(store),
		LLM:       llm,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func action(op dialog.Operation, kind dialog.EntityKind, params map[string]string) dialog.ResolvedAction {
	if params == nil {
		params = map[string]string{}
	}
	return dialog.ResolvedAction{Intent: dialog.Intent{Operation: op, Kind: kind}, Params: params}
}

func TestExecute_CreateAndListCustomers(t *testing.T) {
	store := memory.NewStore()
	ex := newExecutor(store, mock.Text(""))

	res := ex.Execute(context.Background(), action(dialog.OpCreate, dialog.KindCustomer,
		map[string]string{"name": "Juan Pérez", "email": "juan@example.com"}), "")
	if res.Status != dialog.StatusSuccess {
		t.Fatalf("create failed: %+v", res)
	}
	created, ok := res.Data.(records.Customer)
	if !ok || created.ID == 0 {
		t.Fatalf("expected created customer payload, got %#v", res.Data)
	}

	list := ex.Execute(context.Background(), action(dialog.OpList, dialog.KindCustomer, nil), "")
	if list.Status != dialog.StatusSuccess {
		t.Fatalf("list failed: %+v", list)
	}
	customers, ok := list.Data.([]records.Customer)
	if !ok || len(customers) != 1 || customers[0].Name != "Juan Pérez" {
		t.Fatalf("unexpected list payload %#v", list.Data)
	}
	if !strings.Contains(list.Message, "Juan Pérez") {
		t.Fatalf("list message should mention the customer: %q", list.Message)
	}
}

func TestExecute_ListIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	store.SeedProduct(records.Product{Name: "Caja", Price: 10, Stock: 5})
	ex := newExecutor(store, mock.Text(""))

	first := ex.Execute(context.Background(), action(dialog.OpList, dialog.KindProduct, nil), "")
	second := ex.Execute(context.Background(), action(dialog.OpList, dialog.KindProduct, nil), "")
	if first.Message != second.Message {
		t.Fatalf("list not idempotent:\n%q\n%q", first.Message, second.Message)
	}
}

func TestExecute_UpdateProductStock(t *testing.T) {
	store := memory.NewStore()
	p := store.SeedProduct(records.Product{Name: "Caja", Price: 10, Stock: 5})
	ex := newExecutor(store, mock.Text(""))

	res := ex.Execute(context.Background(), action(dialog.OpUpdate, dialog.KindProduct,
		map[string]string{"id": itoa(p.ID), "stock": "40", "price": "11.5"}), "")
	if res.Status != dialog.StatusSuccess {
		t.Fatalf("update failed: %+v", res)
	}
	updated := res.Data.(records.Product)
	if updated.Stock != 40 || updated.Price != 11.5 {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestExecute_DeleteMissingCustomerIsSanitized(t *testing.T) {
	ex := newExecutor(memory.NewStore(), mock.Text(""))
	res := ex.Execute(context.Background(), action(dialog.OpDelete, dialog.KindCustomer,
		map[string]string{"id": "99"}), "")
	if res.Status != dialog.StatusError {
		t.Fatalf("expected error, got %+v", res)
	}
	if strings.Contains(res.Message, "ports.") || strings.Contains(res.Message, "gorm") {
		t.Fatalf("raw internals leaked: %q", res.Message)
	}
}

func TestExecute_ProcessSaleDecrementsStock(t *testing.T) {
	store := memory.NewStore()
	c := store.SeedCustomer(records.Customer{Name: "Ana"})
	p := store.SeedProduct(records.Product{Name: "Caja", Price: 12.5, Stock: 10})
	ex := newExecutor(store, mock.Text(""))

	res := ex.Execute(context.Background(), action(dialog.OpCreate, dialog.KindSale, map[string]string{
		"customer_id": itoa(c.ID), "product_id": itoa(p.ID), "quantity": "4",
	}), "")
	if res.Status != dialog.StatusSuccess {
		t.Fatalf("sale failed: %+v", res)
	}
	sale := res.Data.(records.Sale)
	if sale.Total != 50 {
		t.Fatalf("expected total 50, got %v", sale.Total)
	}
	if len(sale.Items) != 1 || sale.Items[0].Quantity != 4 || sale.Items[0].UnitPrice != 12.5 {
		t.Fatalf("unexpected items %+v", sale.Items)
	}

	after, err := memory.NewProductRepo(store).GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if after.Stock != 6 {
		t.Fatalf("expected stock 6 after sale, got %d", after.Stock)
	}
}

func TestExecute_ProcessSaleInsufficientStock(t *testing.T) {
	store := memory.NewStore()
	c := store.SeedCustomer(records.Customer{Name: "Ana"})
	p := store.SeedProduct(records.Product{Name: "Caja", Price: 12.5, Stock: 2})
	ex := newExecutor(store, mock.Text(""))

	res := ex.Execute(context.Background(), action(dialog.OpCreate, dialog.KindSale, map[string]string{
		"customer_id": itoa(c.ID), "product_id": itoa(p.ID), "quantity": "5",
	}), "")
	if res.Status != dialog.StatusError || !strings.Contains(res.Message, "stock") {
		t.Fatalf("expected stock error, got %+v", res)
	}
	after, _ := memory.NewProductRepo(store).GetByID(context.Background(), p.ID)
	if after.Stock != 2 {
		t.Fatalf("stock must be untouched on failure, got %d", after.Stock)
	}
}

func TestExecute_GenerateInvoiceOncePerSale(t *testing.T) {
	store := memory.NewStore()
	sale := store.SeedSale(records.Sale{CustomerID: 1, Total: 99.5, Status: records.SaleCompleted})
	ex := newExecutor(store, mock.Text(""))

	params := map[string]string{"sale_id": itoa(sale.ID)}
	first := ex.Execute(context.Background(), action(dialog.OpCreate, dialog.KindInvoice, params), "")
	if first.Status != dialog.StatusSuccess {
		t.Fatalf("invoice failed: %+v", first)
	}
	inv := first.Data.(records.Invoice)
	if inv.Total != 99.5 || !strings.HasPrefix(inv.Number, "INV-") {
		t.Fatalf("unexpected invoice %+v", inv)
	}

	second := ex.Execute(context.Background(), action(dialog.OpCreate, dialog.KindInvoice, params), "")
	if second.Status != dialog.StatusError || !strings.Contains(second.Message, "already") {
		t.Fatalf("expected duplicate invoice error, got %+v", second)
	}
}

func TestExecute_GeneralChatUsesModelWithFallback(t *testing.T) {
	ex := newExecutor(memory.NewStore(), mock.Text("¡Hola! ¿En qué te ayudo?"))
	res := ex.Execute(context.Background(), action(dialog.OpGeneralChat, dialog.KindNone, nil), "Hola")
	if res.Status != dialog.StatusChat || res.Message != "¡Hola! ¿En qué te ayudo?" {
		t.Fatalf("unexpected chat result %+v", res)
	}

	down := newExecutor(memory.NewStore(), mock.NewCompleter(mock.Reply{Err: errors.New("down")}))
	res = down.Execute(context.Background(), action(dialog.OpGeneralChat, dialog.KindNone, nil), "Hola")
	if res.Status != dialog.StatusChat || res.Message == "" {
		t.Fatalf("chat must fall back when the model is down, got %+v", res)
	}
}

func TestExecute_UnknownAsksToRephrase(t *testing.T) {
	ex := newExecutor(memory.NewStore(), mock.Text(""))
	res := ex.Execute(context.Background(), action(dialog.OpUnknown, dialog.KindNone, nil), "???")
	if res.Status != dialog.StatusError || !strings.Contains(res.Message, "rephrase") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
