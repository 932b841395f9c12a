package store

import (
	"time"

	"socialstore/models"
	"socialstore/utils"
)

// PartialStore handles in-flight multi-step login state, keyed by token.
type PartialStore struct {
	session
}

// Load returns the partial session for a token, or nil when it is unknown.
func (s *PartialStore) Load(token string) (*models.Partial, error) {
	var partial models.Partial
	err := s.db.Where("token = ?", token).First(&partial).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &partial, nil
}

// Store persists a partial session. A missing token gets generated; when a
// row with the same token already exists it is updated in place.
func (s *PartialStore) Store(partial *models.Partial) error {
	if partial.Token == "" {
		token, err := utils.RandomToken()
		if err != nil {
			return err
		}
		partial.Token = token
	}

	if partial.ID == 0 {
		existing, err := s.Load(partial.Token)
		if err != nil {
			return err
		}
		if existing != nil {
			partial.ID = existing.ID
			partial.CreatedAt = existing.CreatedAt
		}
	}

	return s.persist(partial)
}

// Destroy removes the partial session for a token. Unknown tokens are a
// no-op, not an error.
func (s *PartialStore) Destroy(token string) error {
	partial, err := s.Load(token)
	if err != nil {
		return err
	}
	if partial == nil {
		return nil
	}
	return s.db.Delete(partial).Error
}

// PurgeOlderThan deletes partial sessions created before the cutoff and
// returns how many rows went away. Abandoned logins otherwise pile up.
func (s *PartialStore) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.Partial{})
	return result.RowsAffected, result.Error
}
