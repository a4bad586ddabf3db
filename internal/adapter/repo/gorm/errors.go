package gormrepo

import (
	"errors"

	"ventia/internal/app/ports"

	"gorm.io/gorm"
)

// translateError maps driver-level errors onto the port sentinels.
// OpenPostgres enables gorm's TranslateError, so unique violations
// surface as gorm.ErrDuplicatedKey here.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}
