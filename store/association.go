package store

import (
	"encoding/base64"

	"socialstore/models"
)

// OpenIDAssociation is the handshake credential handed over by the auth
// layer; Secret arrives raw and is only ever stored encoded.
type OpenIDAssociation struct {
	Handle    string
	Secret    []byte
	Issued    int64
	Lifetime  int64
	AssocType string
}

// AssociationStore handles stored OpenID provider credentials.
type AssociationStore struct {
	session
}

// Store upserts the association for (serverURL, handle). An existing row is
// refreshed in place — issued can never be null, so this is deliberately not
// a blind insert.
func (s *AssociationStore) Store(serverURL string, assoc OpenIDAssociation) error {
	var record models.Association
	err := s.db.Where("server_url = ? AND handle = ?", serverURL, assoc.Handle).
		First(&record).Error
	if err != nil {
		if !isNotFound(err) {
			return err
		}
		record = models.Association{ServerURL: serverURL, Handle: assoc.Handle}
	}

	record.Secret = base64.StdEncoding.EncodeToString(assoc.Secret)
	record.Issued = assoc.Issued
	record.Lifetime = assoc.Lifetime
	record.AssocType = assoc.AssocType

	return s.persist(&record)
}

// Get returns all associations matching the non-empty filters.
func (s *AssociationStore) Get(serverURL, handle string) ([]models.Association, error) {
	query := s.db.Model(&models.Association{})
	if serverURL != "" {
		query = query.Where("server_url = ?", serverURL)
	}
	if handle != "" {
		query = query.Where("handle = ?", handle)
	}

	var records []models.Association
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Remove bulk-deletes associations by primary key in a single statement.
// Callers must not hold loaded copies of the deleted rows afterwards.
func (s *AssociationStore) Remove(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Where("id IN ?", ids).Delete(&models.Association{}).Error
}

// Expired returns the ids of associations whose validity window has lapsed
// at the given unix timestamp.
func (s *AssociationStore) Expired(now int64) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Association{}).
		Where("issued + lifetime <= ?", now).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
