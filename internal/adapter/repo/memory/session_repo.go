package memory

import (
	"context"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetByID(_ context.Context, sessionID string) (dialog.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.sessions[sessionID]
	if !ok {
		return dialog.Session{}, ports.ErrNotFound
	}
	return s, nil
}

func (r SessionRepo) SaveWithVersion(_ context.Context, session dialog.Session, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.sessions[session.ID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.sessions[session.ID] = session
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.sessions[session.ID] = session
	return nil
}

type TurnRepo struct {
	store *Store
}

func NewTurnRepo(store *Store) TurnRepo {
	return TurnRepo{store: store}
}

func (r TurnRepo) Append(_ context.Context, turns []ports.TurnRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range turns {
		r.store.turns[t.SessionID] = append(r.store.turns[t.SessionID], t)
	}
	return nil
}

func (r TurnRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]ports.TurnRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.turns[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]ports.TurnRecord, len(all))
	copy(out, all)
	return out, nil
}
