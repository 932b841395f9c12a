package store

import (
	"socialstore/models"
)

// NonceStore handles one-time OpenID handshake values.
type NonceStore struct {
	session
}

// Use returns the nonce matching all three fields, creating it when absent.
// There is no transactional guard around the get-or-create: two concurrent
// calls with the same key race, and the unique constraint is the backstop —
// the loser gets an integrity error instead of a second row.
func (s *NonceStore) Use(serverURL string, timestamp int64, salt string) (*models.Nonce, error) {
	var nonce models.Nonce
	err := s.db.Where("server_url = ? AND timestamp = ? AND salt = ?", serverURL, timestamp, salt).
		First(&nonce).Error
	if err == nil {
		return &nonce, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	nonce = models.Nonce{
		ServerURL: serverURL,
		Timestamp: timestamp,
		Salt:      salt,
	}
	if err := s.save(&nonce); err != nil {
		return nil, err
	}
	return &nonce, nil
}
