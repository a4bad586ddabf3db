package memory

import (
	"context"
	"sort"
	"strings"

	"ventia/internal/app/ports"
	"ventia/internal/domain/records"
)

type ProductRepo struct {
	store *Store
}

func NewProductRepo(store *Store) ProductRepo {
	return ProductRepo{store: store}
}

func (r ProductRepo) Create(_ context.Context, p records.Product) (records.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p.ID = r.store.nextSeq()
	r.store.products[p.ID] = p
	return p, nil
}

func (r ProductRepo) List(_ context.Context) ([]records.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]records.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r ProductRepo) Search(_ context.Context, query string) ([]records.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []records.Product{}
	for _, p := range r.store.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r ProductRepo) GetByID(_ context.Context, id int64) (records.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return records.Product{}, ports.ErrNotFound
	}
	return p, nil
}

func (r ProductRepo) Update(_ context.Context, id int64, fields map[string]any) (records.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return records.Product{}, ports.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := fields["stock"].(int); ok {
		p.Stock = v
	}
	r.store.products[id] = p
	return p, nil
}

func (r ProductRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}
