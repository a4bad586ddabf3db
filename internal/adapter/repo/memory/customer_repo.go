package memory

import (
	"context"
	"sort"
	"strings"

	"ventia/internal/app/ports"
	"ventia/internal/domain/records"
)

type CustomerRepo struct {
	store *Store
}

func NewCustomerRepo(store *Store) CustomerRepo {
	return CustomerRepo{store: store}
}

func (r CustomerRepo) Create(_ context.Context, c records.Customer) (records.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c.Email != "" {
		for _, existing := range r.store.customers {
			if existing.Email == c.Email {
				return records.Customer{}, ports.ErrConflict
			}
		}
	}
	c.ID = r.store.nextSeq()
	r.store.customers[c.ID] = c
	return c, nil
}

func (r CustomerRepo) List(_ context.Context) ([]records.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]records.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r CustomerRepo) Search(_ context.Context, query string) ([]records.Customer, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []records.Customer{}
	for _, c := range r.store.customers {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r CustomerRepo) GetByID(_ context.Context, id int64) (records.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.customers[id]
	if !ok {
		return records.Customer{}, ports.ErrNotFound
	}
	return c, nil
}

func (r CustomerRepo) Update(_ context.Context, id int64, fields map[string]any) (records.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return records.Customer{}, ports.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		c.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		c.Email = v
	}
	if v, ok := fields["phone"].(string); ok {
		c.Phone = v
	}
	if v, ok := fields["address"].(string); ok {
		c.Address = v
	}
	r.store.customers[id] = c
	return c, nil
}

func (r CustomerRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.customers, id)
	return nil
}
