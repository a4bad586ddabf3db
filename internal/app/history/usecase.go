package history

import (
	"context"
	"errors"
	"strings"

	"ventia/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const (
	defaultLimit = 50
	maxLimit     = 200
)

// UseCase returns the logged turns of one conversation, oldest first.
type UseCase struct {
	Turns ports.TurnRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return Response{}, ErrInvalidRequest
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	turns, err := u.Turns.ListBySessionID(ctx, sessionID, limit)
	if err != nil {
		return Response{}, err
	}
	if turns == nil {
		turns = []ports.TurnRecord{}
	}
	return Response{SessionID: sessionID, Turns: turns}, nil
}
