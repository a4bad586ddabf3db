package converse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ventia/internal/app/extract"
	"ventia/internal/app/ports"
	"ventia/internal/app/resolve"
	"ventia/internal/domain/dialog"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid chat request")

const historyTurns = 6

type IntentExtractor interface {
	Extract(ctx context.Context, message string, history []ports.TurnRecord) extract.Result
}

type ActionResolver interface {
	Resolve(intent dialog.Intent, entities dialog.Entities) resolve.Outcome
}

type ActionExecutor interface {
	Execute(ctx context.Context, action dialog.ResolvedAction, originalMessage string) dialog.TurnResult
}

// UseCase orchestrates one conversational turn: session lookup, the
// confirmation gate, extraction, resolution and execution. Concurrent
// turns for the same session serialize on Locks; the session row itself
// is version-guarded so an external store stays consistent too.
type UseCase struct {
	Sessions   ports.SessionRepository
	Turns      ports.TurnRepository
	Extractor  IntentExtractor
	Resolver   ActionResolver
	Executor   ActionExecutor
	Metrics    ports.ConversationMetrics
	Vocabulary dialog.Vocabulary
	Locks      *SessionLocks
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrInvalidRequest
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if u.Locks != nil {
		defer u.Locks.Lock(sessionID)()
	}

	now := u.now()
	session, err := u.loadOrCreate(ctx, sessionID, now)
	if err != nil {
		return Response{}, err
	}

	var result dialog.TurnResult
	if session.AwaitingConfirmation() {
		result = u.confirmationTurn(ctx, &session, message, now)
	} else {
		result = u.commandTurn(ctx, &session, message, now)
	}

	u.logTurns(ctx, sessionID, message, result, now)
	if u.Metrics != nil {
		u.Metrics.RecordTurn(result.Status)
	}
	return Response{SessionID: sessionID, Result: result}, nil
}

// confirmationTurn interprets the message strictly against the closed
// confirmation vocabulary. Extraction never runs while an action is
// pending, so ambiguous text cannot be misread as a new command.
func (u UseCase) confirmationTurn(ctx context.Context, session *dialog.Session, message string, now time.Time) dialog.TurnResult {
	switch u.vocabulary().Classify(message) {
	case dialog.ReplyAffirmative:
		action, err := session.TakePending(now)
		if err != nil {
			return dialog.ErrorResult("There is no pending operation to confirm.")
		}
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		if u.Metrics != nil {
			u.Metrics.RecordConfirmationCommitted()
		}
		return u.Executor.Execute(ctx, action, message)

	case dialog.ReplyNegative:
		if _, err := session.TakePending(now); err != nil {
			return dialog.ErrorResult("There is no pending operation to cancel.")
		}
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		if u.Metrics != nil {
			u.Metrics.RecordConfirmationCancelled()
		}
		return dialog.ChatResult("Operation cancelled. What else can I do for you?")

	default:
		session.Touch(now)
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		if u.Metrics != nil {
			u.Metrics.RecordConfirmationReprompted()
		}
		return confirmationPrompt(*session.Pending)
	}
}

func (u UseCase) commandTurn(ctx context.Context, session *dialog.Session, message string, now time.Time) dialog.TurnResult {
	if u.vocabulary().Classify(message) != dialog.ReplyAmbiguous {
		session.Touch(now)
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		return dialog.ErrorResult("There is no pending operation to confirm or cancel. What would you like to do?")
	}

	extraction := u.Extractor.Extract(ctx, message, u.history(ctx, session.ID))
	if extraction.Degraded && u.Metrics != nil {
		u.Metrics.RecordExtractionFallback()
	}

	outcome := u.Resolver.Resolve(extraction.Intent, extraction.Entities)
	if outcome.Result != nil {
		session.Touch(now)
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		return *outcome.Result
	}

	action := *outcome.Action
	if action.RequiresConfirmation {
		session.HoldForConfirmation(action, now)
		if err := u.save(ctx, session); err != nil {
			return concurrencyResult(err)
		}
		return confirmationPrompt(action)
	}

	session.Touch(now)
	if err := u.save(ctx, session); err != nil {
		return concurrencyResult(err)
	}
	return u.Executor.Execute(ctx, action, message)
}

func (u UseCase) loadOrCreate(ctx context.Context, sessionID string, now time.Time) (dialog.Session, error) {
	session, err := u.Sessions.GetByID(ctx, sessionID)
	if errors.Is(err, ports.ErrNotFound) {
		return dialog.NewSession(sessionID, now), nil
	}
	if err != nil {
		return dialog.Session{}, err
	}
	if !session.Consistent() {
		// Corrupt row: reset rather than leave the conversation stuck.
		fresh := dialog.NewSession(sessionID, now)
		fresh.Version = session.Version
		return fresh, nil
	}
	return session, nil
}

// save persists the session under its stored version and bumps it. The
// state transition was decided under the session lock, so a conflict
// means an out-of-band writer touched the row.
func (u UseCase) save(ctx context.Context, session *dialog.Session) error {
	expected := session.Version
	session.Version++
	if err := u.Sessions.SaveWithVersion(ctx, *session, expected); err != nil {
		session.Version = expected
		return err
	}
	return nil
}

func (u UseCase) history(ctx context.Context, sessionID string) []ports.TurnRecord {
	if u.Turns == nil {
		return nil
	}
	turns, err := u.Turns.ListBySessionID(ctx, sessionID, historyTurns)
	if err != nil {
		return nil
	}
	return turns
}

// logTurns appends the user message and the assistant reply to the turn
// log. The log is advisory; its failures never fail the turn.
func (u UseCase) logTurns(ctx context.Context, sessionID, message string, result dialog.TurnResult, now time.Time) {
	if u.Turns == nil {
		return
	}
	_ = u.Turns.Append(ctx, []ports.TurnRecord{
		{SessionID: sessionID, Role: ports.TurnRoleUser, Message: message, OccurredAt: now},
		{SessionID: sessionID, Role: ports.TurnRoleAssistant, Message: result.Message, Status: result.Status, OccurredAt: now},
	})
}

func (u UseCase) vocabulary() dialog.Vocabulary {
	if len(u.Vocabulary.Affirmative) > 0 || len(u.Vocabulary.Negative) > 0 {
		return u.Vocabulary
	}
	return dialog.DefaultVocabulary()
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func confirmationPrompt(action dialog.ResolvedAction) dialog.TurnResult {
	return dialog.TurnResult{
		Status: dialog.StatusConfirmationRequired,
		Message: fmt.Sprintf("I am about to %s. Reply 'sí' to proceed or 'no' to cancel.",
			action.Summary),
		Data: action,
	}
}

func concurrencyResult(err error) dialog.TurnResult {
	if errors.Is(err, ports.ErrConflict) {
		return dialog.ErrorResult("Your session changed while I was processing. Please send that again.")
	}
	return dialog.ErrorResult("I could not save the conversation state. Please try again.")
}
