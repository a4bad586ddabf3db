package memory

import (
	"context"
	"sort"

	"ventia/internal/app/ports"
	"ventia/internal/domain/records"
)

type SaleRepo struct {
	store *Store
}

func NewSaleRepo(store *Store) SaleRepo {
	return SaleRepo{store: store}
}

func (r SaleRepo) Create(_ context.Context, s records.Sale) (records.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s.ID = r.store.nextSeq()
	for i := range s.Items {
		s.Items[i].ID = r.store.nextSeq()
		s.Items[i].SaleID = s.ID
	}
	r.store.sales[s.ID] = s
	return s, nil
}

func (r SaleRepo) List(_ context.Context) ([]records.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]records.Sale, 0, len(r.store.sales))
	for _, s := range r.store.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r SaleRepo) GetByID(_ context.Context, id int64) (records.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.sales[id]
	if !ok {
		return records.Sale{}, ports.ErrNotFound
	}
	return s, nil
}

type InvoiceRepo struct {
	store *Store
}

func NewInvoiceRepo(store *Store) InvoiceRepo {
	return InvoiceRepo{store: store}
}

func (r InvoiceRepo) Create(_ context.Context, inv records.Invoice) (records.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.invoices {
		if existing.SaleID == inv.SaleID {
			return records.Invoice{}, ports.ErrConflict
		}
	}
	inv.ID = r.store.nextSeq()
	r.store.invoices[inv.ID] = inv
	return inv, nil
}

func (r InvoiceRepo) List(_ context.Context) ([]records.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]records.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r InvoiceRepo) GetBySaleID(_ context.Context, saleID int64) (records.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, inv := range r.store.invoices {
		if inv.SaleID == saleID {
			return inv, nil
		}
	}
	return records.Invoice{}, ports.ErrNotFound
}
