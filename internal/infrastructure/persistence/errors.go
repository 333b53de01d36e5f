package persistence

import (
	"errors"
	"strings"

	"github.com/qrdine/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// isDuplicateKey reports a unique index violation. Dialect translation covers
// connections opened with TranslateError; the message checks cover the rest.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

// saveError maps a unique violation to shared.ErrAlreadyExists
func saveError(err error) error {
	if isDuplicateKey(err) {
		return shared.ErrAlreadyExists
	}
	return err
}
