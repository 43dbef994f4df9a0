package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a write violates a unique index.
// The database must be opened with gorm.Config{TranslateError: true}.
var ErrDuplicate = errors.New("duplicate record")

// translate maps gorm errors onto repository sentinels
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
