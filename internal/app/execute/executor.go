package execute

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
	"ventia/internal/domain/records"
)

const chatFallbackReply = "I can help you manage customers, products, sales and invoices. " +
	"Try asking me to list, search, create or update one of them."

const rephraseReply = "I could not understand that request. Could you rephrase it? " +
	"I can list, search, create, update and delete customers, products, sales and invoices."

// Executor performs a resolved, already-confirmed action against the
// persistence collaborators and formats the outcome for the user. It never
// returns a Go error: data-layer failures become sanitized error-status
// results.
type Executor struct {
	Customers ports.CustomerRepository
	Products  ports.ProductRepository
	Sales     ports.SaleRepository
	Invoices  ports.InvoiceRepository
	Tx        ports.TxManager
	LLM       ports.Completer
	Now       func() time.Time
}

func (e Executor) Execute(ctx context.Context, action dialog.ResolvedAction, originalMessage string) dialog.TurnResult {
	switch action.Intent.Operation {
	case dialog.OpUnknown:
		return dialog.ErrorResult(rephraseReply)
	case dialog.OpGeneralChat:
		return e.chat(ctx, originalMessage)
	}

	switch action.Intent.Kind {
	case dialog.KindCustomer:
		return e.customer(ctx, action)
	case dialog.KindProduct:
		return e.product(ctx, action)
	case dialog.KindSale:
		return e.sale(ctx, action)
	case dialog.KindInvoice:
		return e.invoice(ctx, action)
	}
	return dialog.ErrorResult(rephraseReply)
}

func (e Executor) chat(ctx context.Context, message string) dialog.TurnResult {
	reply, err := e.LLM.Complete(ctx, buildChatPrompt(message))
	reply = strings.TrimSpace(reply)
	if err != nil || reply == "" {
		return dialog.ChatResult(chatFallbackReply)
	}
	return dialog.ChatResult(reply)
}

func buildChatPrompt(message string) string {
	var b strings.Builder
	b.WriteString("You are a friendly assistant for a business that manages customers, ")
	b.WriteString("products, sales and invoices. Reply briefly (at most three sentences) ")
	b.WriteString("in the language of the user message. If unsure, suggest a record ")
	b.WriteString("operation you support.\n\nUser message: ")
	b.WriteString(message)
	b.WriteString("\n")
	return b.String()
}

func (e Executor) customer(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	switch action.Intent.Operation {
	case dialog.OpCreate:
		c := records.Customer{
			Name:    action.Params["name"],
			Email:   action.Params["email"],
			Phone:   action.Params["phone"],
			Address: action.Params["address"],
		}
		created, err := e.Customers.Create(ctx, c)
		if err != nil {
			return storageError(err, "customer")
		}
		return dialog.TurnResult{
			Status:  dialog.StatusSuccess,
			Message: fmt.Sprintf("Customer %q created with id %d.", created.Name, created.ID),
			Data:    created,
		}
	case dialog.OpList:
		customers, err := e.Customers.List(ctx)
		if err != nil {
			return storageError(err, "customer")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatCustomers(customers), Data: customers}
	case dialog.OpSearch:
		query := action.Params["name"]
		if query == "" {
			query = action.Params["email"]
		}
		customers, err := e.Customers.Search(ctx, query)
		if err != nil {
			return storageError(err, "customer")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatCustomers(customers), Data: customers}
	case dialog.OpUpdate:
		id := mustInt(action.Params["id"])
		updated, err := e.Customers.Update(ctx, id, updatableFields(action.Params, "name", "email", "phone", "address"))
		if err != nil {
			return storageError(err, "customer")
		}
		return dialog.TurnResult{
			Status:  dialog.StatusSuccess,
			Message: fmt.Sprintf("Customer %d updated.", updated.ID),
			Data:    updated,
		}
	case dialog.OpDelete:
		id := mustInt(action.Params["id"])
		if err := e.Customers.Delete(ctx, id); err != nil {
			return storageError(err, "customer")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: fmt.Sprintf("Customer %d deleted.", id)}
	}
	return dialog.ErrorResult(rephraseReply)
}

func (e Executor) product(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	switch action.Intent.Operation {
	case dialog.OpCreate:
		price, _ := strconv.ParseFloat(action.Params["price"], 64)
		stock := 0
		if s, ok := action.Params["stock"]; ok {
			stock = int(mustInt(s))
		}
		p := records.Product{
			Name:        action.Params["name"],
			Description: action.Params["description"],
			Price:       price,
			Stock:       stock,
		}
		created, err := e.Products.Create(ctx, p)
		if err != nil {
			return storageError(err, "product")
		}
		return dialog.TurnResult{
			Status:  dialog.StatusSuccess,
			Message: fmt.Sprintf("Product %q created with id %d.", created.Name, created.ID),
			Data:    created,
		}
	case dialog.OpList:
		products, err := e.Products.List(ctx)
		if err != nil {
			return storageError(err, "product")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatProducts(products), Data: products}
	case dialog.OpSearch:
		products, err := e.Products.Search(ctx, action.Params["name"])
		if err != nil {
			return storageError(err, "product")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatProducts(products), Data: products}
	case dialog.OpUpdate:
		id := mustInt(action.Params["id"])
		updated, err := e.Products.Update(ctx, id, updatableFields(action.Params, "name", "description", "price", "stock"))
		if err != nil {
			return storageError(err, "product")
		}
		return dialog.TurnResult{
			Status:  dialog.StatusSuccess,
			Message: fmt.Sprintf("Product %d updated.", updated.ID),
			Data:    updated,
		}
	case dialog.OpDelete:
		id := mustInt(action.Params["id"])
		if err := e.Products.Delete(ctx, id); err != nil {
			return storageError(err, "product")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: fmt.Sprintf("Product %d deleted.", id)}
	}
	return dialog.ErrorResult(rephraseReply)
}

func (e Executor) sale(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	switch action.Intent.Operation {
	case dialog.OpCreate:
		return e.processSale(ctx, action)
	case dialog.OpList:
		sales, err := e.Sales.List(ctx)
		if err != nil {
			return storageError(err, "sale")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatSales(sales), Data: sales}
	}
	return dialog.ErrorResult(rephraseReply)
}

// processSale snapshots the product price, decrements stock and records
// the sale with its item, all in one transaction.
func (e Executor) processSale(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	customerID := mustInt(action.Params["customer_id"])
	productID := mustInt(action.Params["product_id"])
	quantity := int(mustInt(action.Params["quantity"]))
	if quantity <= 0 {
		return dialog.ErrorResult("The sale quantity must be at least 1.")
	}

	var sale records.Sale
	err := e.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.Customers.GetByID(txCtx, customerID); err != nil {
			return fmt.Errorf("customer: %w", err)
		}
		product, err := e.Products.GetByID(txCtx, productID)
		if err != nil {
			return fmt.Errorf("product: %w", err)
		}
		if product.Stock < quantity {
			return fmt.Errorf("product %q: %w", product.Name, errInsufficientStock)
		}
		if _, err := e.Products.Update(txCtx, productID, map[string]any{"stock": product.Stock - quantity}); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		subtotal := product.Price * float64(quantity)
		sale, err = e.Sales.Create(txCtx, records.Sale{
			CustomerID: customerID,
			SoldAt:     e.now(),
			Total:      subtotal,
			Status:     records.SaleCompleted,
			Items: []records.SaleItem{{
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			}},
		})
		return err
	})
	if err != nil {
		if errors.Is(err, errInsufficientStock) {
			return dialog.ErrorResult("There is not enough stock for that sale.")
		}
		return storageError(err, "sale")
	}
	return dialog.TurnResult{
		Status:  dialog.StatusSuccess,
		Message: fmt.Sprintf("Sale %d recorded for customer %d, total %.2f.", sale.ID, sale.CustomerID, sale.Total),
		Data:    sale,
	}
}

func (e Executor) invoice(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	switch action.Intent.Operation {
	case dialog.OpCreate:
		return e.generateInvoice(ctx, action)
	case dialog.OpList:
		invoices, err := e.Invoices.List(ctx)
		if err != nil {
			return storageError(err, "invoice")
		}
		return dialog.TurnResult{Status: dialog.StatusSuccess, Message: formatInvoices(invoices), Data: invoices}
	}
	return dialog.ErrorResult(rephraseReply)
}

func (e Executor) generateInvoice(ctx context.Context, action dialog.ResolvedAction) dialog.TurnResult {
	saleID := mustInt(action.Params["sale_id"])

	var invoice records.Invoice
	err := e.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		sale, err := e.Sales.GetByID(txCtx, saleID)
		if err != nil {
			return fmt.Errorf("sale: %w", err)
		}
		if _, err := e.Invoices.GetBySaleID(txCtx, saleID); err == nil {
			return fmt.Errorf("sale %d: %w", saleID, ports.ErrConflict)
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		now := e.now()
		invoice, err = e.Invoices.Create(txCtx, records.Invoice{
			SaleID:   saleID,
			Number:   fmt.Sprintf("INV-%d-%d", saleID, now.Unix()),
			IssuedAt: now,
			Status:   records.InvoicePending,
			Total:    sale.Total,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return dialog.ErrorResult(fmt.Sprintf("Sale %d already has an invoice.", saleID))
		}
		return storageError(err, "invoice")
	}
	return dialog.TurnResult{
		Status:  dialog.StatusSuccess,
		Message: fmt.Sprintf("Invoice %s issued for sale %d, total %.2f.", invoice.Number, invoice.SaleID, invoice.Total),
		Data:    invoice,
	}
}

var errInsufficientStock = errors.New("insufficient stock")

func (e Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// storageError hides raw data-layer text behind messages safe to show the
// user.
func storageError(err error, noun string) dialog.TurnResult {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return dialog.ErrorResult(fmt.Sprintf("That %s was not found. Check the id and try again.", noun))
	case errors.Is(err, ports.ErrConflict):
		return dialog.ErrorResult(fmt.Sprintf("A %s with those details already exists.", noun))
	default:
		return dialog.ErrorResult("The storage operation failed. Please try again in a moment.")
	}
}

func mustInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func updatableFields(params map[string]string, names ...string) map[string]any {
	out := map[string]any{}
	for _, name := range names {
		v, ok := params[name]
		if !ok {
			continue
		}
		switch name {
		case "stock":
			n, _ := strconv.ParseInt(v, 10, 64)
			out[name] = int(n)
		case "price":
			f, _ := strconv.ParseFloat(v, 64)
			out[name] = f
		default:
			out[name] = v
		}
	}
	return out
}
