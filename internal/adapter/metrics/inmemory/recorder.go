package inmemory

import (
	"sync"

	"ventia/internal/domain/dialog"
)

type Snapshot struct {
	TurnTotal              uint64            `json:"turn_total"`
	TurnsByStatus          map[string]uint64 `json:"turns_by_status"`
	ExtractionFallbacks    uint64            `json:"extraction_fallbacks"`
	ConfirmationsCommitted uint64            `json:"confirmations_committed"`
	ConfirmationsCancelled uint64            `json:"confirmations_cancelled"`
	ConfirmationReprompts  uint64            `json:"confirmation_reprompts"`
}

type Recorder struct {
	mu         sync.Mutex
	byStatus   map[string]uint64
	fallbacks  uint64
	committed  uint64
	cancelled  uint64
	reprompted uint64
}

func NewRecorder() *Recorder {
	return &Recorder{byStatus: map[string]uint64{}}
}

func (r *Recorder) RecordTurn(status dialog.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byStatus[string(status)]++
}

func (r *Recorder) RecordExtractionFallback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks++
}

func (r *Recorder) RecordConfirmationCommitted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed++
}

func (r *Recorder) RecordConfirmationCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *Recorder) RecordConfirmationReprompted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reprompted++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnsByStatus:          make(map[string]uint64, len(r.byStatus)),
		ExtractionFallbacks:    r.fallbacks,
		ConfirmationsCommitted: r.committed,
		ConfirmationsCancelled: r.cancelled,
		ConfirmationReprompts:  r.reprompted,
	}
	for k, v := range r.byStatus {
		out.TurnsByStatus[k] = v
		out.TurnTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
