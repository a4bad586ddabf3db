package inmemory

import (
	"sync"
	"testing"

	"ventia/internal/domain/dialog"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordTurn(dialog.StatusSuccess)
	r.RecordTurn(dialog.StatusSuccess)
	r.RecordTurn(dialog.StatusError)
	r.RecordExtractionFallback()
	r.RecordConfirmationCommitted()
	r.RecordConfirmationCancelled()
	r.RecordConfirmationReprompted()
	r.RecordConfirmationReprompted()

	s := r.Snapshot()
	if s.TurnTotal != 3 {
		t.Fatalf("expected 3 turns, got %d", s.TurnTotal)
	}
	if s.TurnsByStatus["success"] != 2 || s.TurnsByStatus["error"] != 1 {
		t.Fatalf("unexpected by-status %+v", s.TurnsByStatus)
	}
	if s.ExtractionFallbacks != 1 || s.ConfirmationsCommitted != 1 || s.ConfirmationsCancelled != 1 || s.ConfirmationReprompts != 2 {
		t.Fatalf("unexpected counters %+v", s)
	}
}

func TestRecorder_ConcurrentUse(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RecordTurn(dialog.StatusChat)
			r.RecordConfirmationReprompted()
		}()
	}
	wg.Wait()
	s := r.Snapshot()
	if s.TurnTotal != 50 || s.ConfirmationReprompts != 50 {
		t.Fatalf("lost updates: %+v", s)
	}
}

func TestSnapshot_IsolatedFromRecorder(t *testing.T) {
	r := NewRecorder()
	r.RecordTurn(dialog.StatusSuccess)
	s := r.Snapshot()
	s.TurnsByStatus["success"] = 99
	if r.Snapshot().TurnsByStatus["success"] != 1 {
		t.Fatal("snapshot must copy the status map")
	}
}
