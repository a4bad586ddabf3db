package dialog

import (
	"errors"
	"time"
)

type SessionState string

const (
	StateAwaitingInput        SessionState = "awaiting_input"
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
)

var ErrNoPendingAction = errors.New("no pending action")

// Session is the per-conversation state. Invariant: Pending is non-nil
// exactly when State is StateAwaitingConfirmation; mutate only through
// the methods below.
type Session struct {
	ID           string          `json:"id"`
	State        SessionState    `json:"state"`
	Pending      *ResolvedAction `json:"pending,omitempty"`
	LastActiveAt time.Time       `json:"last_active_at"`
	Version      int64           `json:"version"`
}

func NewSession(id string, now time.Time) Session {
	return Session{
		ID:           id,
		State:        StateAwaitingInput,
		LastActiveAt: now,
	}
}

func (s *Session) Touch(now time.Time) {
	s.LastActiveAt = now
}

// HoldForConfirmation parks the action and moves the session to
// StateAwaitingConfirmation.
func (s *Session) HoldForConfirmation(action ResolvedAction, now time.Time) {
	held := action
	s.Pending = &held
	s.State = StateAwaitingConfirmation
	s.LastActiveAt = now
}

// TakePending removes and returns the pending action, returning the
// session to StateAwaitingInput. Used both on commit and on abort.
func (s *Session) TakePending(now time.Time) (ResolvedAction, error) {
	if s.Pending == nil {
		return ResolvedAction{}, ErrNoPendingAction
	}
	action := *s.Pending
	s.Pending = nil
	s.State = StateAwaitingInput
	s.LastActiveAt = now
	return action, nil
}

func (s Session) AwaitingConfirmation() bool {
	return s.State == StateAwaitingConfirmation
}

// Consistent reports whether the pending/state invariant holds. Repos
// loading sessions from storage call this to reject corrupt rows.
func (s Session) Consistent() bool {
	return (s.Pending != nil) == (s.State == StateAwaitingConfirmation)
}
