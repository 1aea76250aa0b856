package repository

import (
	"errors"

	"gorm.io/gorm"
)

// mapNotFound swaps gorm's record-not-found for the domain's own sentinel.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
