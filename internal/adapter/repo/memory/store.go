package memory

import (
	"sync"
	"time"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
	"ventia/internal/domain/records"
)

// Store is the shared in-memory backend for the repo adapters in this
// package. It serves tests and DSN-less development runs.
type Store struct {
	mu        sync.RWMutex
	customers map[int64]records.Customer
	products  map[int64]records.Product
	sales     map[int64]records.Sale
	invoices  map[int64]records.Invoice
	sessions  map[string]dialog.Session
	turns     map[string][]ports.TurnRecord
	nextID    int64

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		customers: make(map[int64]records.Customer),
		products:  make(map[int64]records.Product),
		sales:     make(map[int64]records.Sale),
		invoices:  make(map[int64]records.Invoice),
		sessions:  make(map[string]dialog.Session),
		turns:     make(map[string][]ports.TurnRecord),
	}
}

func (s *Store) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) SeedCustomer(c records.Customer) records.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextSeq()
	}
	s.customers[c.ID] = c
	return c
}

func (s *Store) SeedProduct(p records.Product) records.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextSeq()
	}
	s.products[p.ID] = p
	return p
}

func (s *Store) SeedSale(sale records.Sale) records.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sale.ID == 0 {
		sale.ID = s.nextSeq()
	}
	s.sales[sale.ID] = sale
	return sale
}

// PruneIdle drops sessions (and their turn logs) whose last activity is
// older than maxIdle. Resource bound only; nothing in the core calls it.
func (s *Store) PruneIdle(maxIdle time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActiveAt) > maxIdle {
			delete(s.sessions, id)
			delete(s.turns, id)
			pruned++
		}
	}
	return pruned
}
