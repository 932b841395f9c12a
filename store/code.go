package store

import (
	"socialstore/models"
	"socialstore/utils"
)

// CodeStore handles emailed verification codes.
type CodeStore struct {
	session
}

// GetCode returns the row for a code value, or nil when it was never issued.
func (s *CodeStore) GetCode(code string) (*models.Code, error) {
	var record models.Code
	err := s.db.Where("code = ?", code).First(&record).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MakeCode issues a fresh random code for the given email address.
func (s *CodeStore) MakeCode(email string) (*models.Code, error) {
	value, err := utils.RandomHex(16)
	if err != nil {
		return nil, err
	}

	record := &models.Code{Email: email, Code: value}
	if err := s.save(record); err != nil {
		return nil, err
	}
	return record, nil
}
