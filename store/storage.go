package store

import (
	"errors"

	"gorm.io/gorm"
	"socialstore/models"
)

// Storage aggregates the five social-auth sub-stores behind one handle. It is
// the object handed to the consuming auth library, which depends on the
// capability set {User, Nonce, Association, Code, Partial, IsIntegrityError}.
type Storage struct {
	db *gorm.DB

	User        *UserStore
	Nonce       *NonceStore
	Association *AssociationStore
	Code        *CodeStore
	Partial     *PartialStore
}

// NewStorage creates a storage adapter bound to the given database handle.
func NewStorage(db *gorm.DB) *Storage {
	return &Storage{
		db:          db,
		User:        NewUserStore(db),
		Nonce:       &NonceStore{session{db: db}},
		Association: &AssociationStore{session{db: db}},
		Code:        &CodeStore{session{db: db}},
		Partial:     &PartialStore{session{db: db}},
	}
}

// IsIntegrityError reports whether err is a uniqueness constraint violation.
// Requires the connection to be opened with TranslateError so SQLite and
// MySQL duplicates both surface as gorm.ErrDuplicatedKey.
func (s *Storage) IsIntegrityError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Transaction runs fn against a storage adapter scoped to a single database
// transaction. Outside of it, every write commits immediately.
func (s *Storage) Transaction(fn func(tx *Storage) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStorage(tx))
	})
}

// DB exposes the underlying handle for migrations and maintenance queries.
func (s *Storage) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the social-auth tables for this adapter.
func (s *Storage) Migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.UserSocialAuth{},
		&models.Nonce{},
		&models.Association{},
		&models.Code{},
		&models.Partial{},
	)
}
