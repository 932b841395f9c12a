package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// session is the shared persistence helper embedded by every sub-store.
// Each write is its own transaction, so a successful save is already
// durable; there is no batching and nothing to flush later.
type session struct {
	db *gorm.DB
}

// save inserts a new row and commits immediately.
func (s session) save(value interface{}) error {
	return s.db.Create(value).Error
}

// persist writes an already-loaded row back, creating it when it has no
// primary key yet.
func (s session) persist(value interface{}) error {
	return s.db.Save(value).Error
}

// isNotFound distinguishes "no row" from real store failures. Single-row
// lookups translate it to a nil result instead of an error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// coerceUID normalizes provider uids to text; providers hand back ints,
// strings, or stringers depending on the backend.
func coerceUID(uid interface{}) string {
	if s, ok := uid.(string); ok {
		return s
	}
	return fmt.Sprint(uid)
}
