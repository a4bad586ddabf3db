package history

import (
	"context"
	"testing"
	"time"

	"ventia/internal/adapter/repo/memory"
	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
)

func seedTurns(t *testing.T, repo memory.TurnRepo, sessionID string, n int) {
	t.Helper()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var turns []ports.TurnRecord
	for i := 0; i < n; i++ {
		role := ports.TurnRoleUser
		if i%2 == 1 {
			role = ports.TurnRoleAssistant
		}
		turns = append(turns, ports.TurnRecord{
			SessionID:  sessionID,
			Role:       role,
			Message:    "msg",
			Status:     dialog.StatusSuccess,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	if err := repo.Append(context.Background(), turns); err != nil {
		t.Fatal(err)
	}
}

func TestExecute_ReturnsLoggedTurns(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTurnRepo(store)
	seedTurns(t, repo, "s1", 4)

	resp, err := UseCase{Turns: repo}.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(resp.Turns))
	}
	if resp.Turns[0].Role != ports.TurnRoleUser || resp.Turns[1].Role != ports.TurnRoleAssistant {
		t.Fatalf("turns out of order: %+v", resp.Turns)
	}
}

func TestExecute_LimitKeepsNewestTurns(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewTurnRepo(store)
	seedTurns(t, repo, "s1", 10)

	resp, err := UseCase{Turns: repo}.Execute(context.Background(), Request{SessionID: "s1", Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(resp.Turns))
	}
	// Tail of the log, still oldest-first.
	if !resp.Turns[0].OccurredAt.Before(resp.Turns[2].OccurredAt) {
		t.Fatalf("expected chronological order, got %+v", resp.Turns)
	}
}

func TestExecute_BlankSessionIDRejected(t *testing.T) {
	store := memory.NewStore()
	_, err := UseCase{Turns: memory.NewTurnRepo(store)}.Execute(context.Background(), Request{SessionID: "  "})
	if err != ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestExecute_UnknownSessionIsEmptyNotError(t *testing.T) {
	store := memory.NewStore()
	resp, err := UseCase{Turns: memory.NewTurnRepo(store)}.Execute(context.Background(), Request{SessionID: "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Turns == nil || len(resp.Turns) != 0 {
		t.Fatalf("expected empty slice, got %#v", resp.Turns)
	}
}
