package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"

	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) GetByID(ctx context.Context, sessionID string) (dialog.Session, error) {
	var m model.ConversationSession
	err := dbFromContext(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dialog.Session{}, ports.ErrNotFound
		}
		return dialog.Session{}, err
	}

	session := dialog.Session{
		ID:           m.SessionID,
		State:        dialog.SessionState(m.State),
		LastActiveAt: m.LastActiveAt,
		Version:      m.Version,
	}
	if len(m.Pending) > 0 {
		var action dialog.ResolvedAction
		if err := json.Unmarshal(m.Pending, &action); err != nil {
			return dialog.Session{}, fmt.Errorf("decode pending action: %w", err)
		}
		session.Pending = &action
	}
	return session, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, session dialog.Session, expectedVersion int64) error {
	pending, err := encodePending(session.Pending)
	if err != nil {
		return err
	}
	db := dbFromContext(ctx, r.db)

	if expectedVersion == 0 {
		m := model.ConversationSession{
			SessionID:    session.ID,
			State:        string(session.State),
			Pending:      pending,
			LastActiveAt: session.LastActiveAt,
			Version:      session.Version,
		}
		if err := db.Create(&m).Error; err != nil {
			return translateError(err)
		}
		return nil
	}

	updates := map[string]any{
		"state":          string(session.State),
		"pending":        pending,
		"last_active_at": session.LastActiveAt,
		"version":        session.Version,
	}
	res := db.Model(&model.ConversationSession{}).
		Where("session_id = ? AND version = ?", session.ID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func encodePending(action *dialog.ResolvedAction) ([]byte, error) {
	if action == nil {
		return nil, nil
	}
	b, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode pending action: %w", err)
	}
	return b, nil
}
