package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside one database transaction. The handle
// travels in the context, so fn can call any repo in this package and
// the whole batch commits or rolls back together.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(contextWithTx(ctx, tx))
	})
}
