package memory

import "context"

// TxManager serializes logical transactions against the in-memory store.
// There is no rollback; tests that need failure atomicity use the gorm
// adapter against a real database.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(ctx)
}
