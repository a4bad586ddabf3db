package gormrepo

import (
	"context"

	"ventia/internal/adapter/repo/gorm/model"
	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"

	"gorm.io/gorm"
)

type TurnRepo struct {
	db *gorm.DB
}

func NewTurnRepo(db *gorm.DB) TurnRepo {
	return TurnRepo{db: db}
}

func (r TurnRepo) Append(ctx context.Context, turns []ports.TurnRecord) error {
	if len(turns) == 0 {
		return nil
	}
	rows := make([]model.ConversationTurn, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, model.ConversationTurn{
			SessionID:  t.SessionID,
			Role:       string(t.Role),
			Message:    t.Message,
			Status:     string(t.Status),
			OccurredAt: t.OccurredAt,
		})
	}
	return dbFromContext(ctx, r.db).Create(&rows).Error
}

// ListBySessionID returns the newest turns of the session, oldest first.
func (r TurnRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]ports.TurnRecord, error) {
	var rows []model.ConversationTurn
	query := dbFromContext(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.TurnRecord, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = ports.TurnRecord{
			SessionID:  row.SessionID,
			Role:       ports.TurnRole(row.Role),
			Message:    row.Message,
			Status:     dialog.Status(row.Status),
			OccurredAt: row.OccurredAt,
		}
	}
	return out, nil
}
