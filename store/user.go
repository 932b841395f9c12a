package store

import (
	"gorm.io/gorm"
	"socialstore/models"
	"socialstore/utils"
)

// UserStore handles the user table and the provider links attached to it.
type UserStore struct {
	session

	// HasUsablePassword decides whether an account can still sign in once
	// its provider links are gone. Override it when credentials live
	// outside the users table.
	HasUsablePassword func(user *models.User) bool
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{
		session: session{db: db},
		HasUsablePassword: func(user *models.User) bool {
			return user.HasUsablePassword()
		},
	}
}

// GetSocialAuth returns the link matching (provider, uid) exactly, or nil
// when there is none.
func (s *UserStore) GetSocialAuth(provider string, uid interface{}) (*models.UserSocialAuth, error) {
	var link models.UserSocialAuth
	err := s.db.Where("provider = ? AND uid = ?", provider, coerceUID(uid)).First(&link).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetSocialAuthForUser returns all of a user's links, optionally narrowed by
// provider and/or link id. Zero values mean "don't filter".
func (s *UserStore) GetSocialAuthForUser(user *models.User, provider string, id uint) ([]models.UserSocialAuth, error) {
	query := s.db.Where("user_id = ?", user.ID)
	if provider != "" {
		query = query.Where("provider = ?", provider)
	}
	if id != 0 {
		query = query.Where("id = ?", id)
	}

	var links []models.UserSocialAuth
	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CreateSocialAuth inserts a new provider link and commits it immediately.
// A duplicate (provider, uid) pair fails with an integrity error.
func (s *UserStore) CreateSocialAuth(user *models.User, uid interface{}, provider string) (*models.UserSocialAuth, error) {
	link := &models.UserSocialAuth{
		UserID:   user.ID,
		Provider: provider,
		UID:      coerceUID(uid),
	}
	if err := s.save(link); err != nil {
		return nil, err
	}
	return link, nil
}

// AllowedToDisconnect reports whether removing a link would still leave the
// account a way to sign in. When associationID is set the check excludes
// that single link; otherwise it excludes every link of backendName.
func (s *UserStore) AllowedToDisconnect(user *models.User, backendName string, associationID uint) (bool, error) {
	query := s.db.Model(&models.UserSocialAuth{}).Where("user_id = ?", user.ID)
	if associationID != 0 {
		query = query.Where("id <> ?", associationID)
	} else {
		query = query.Where("provider <> ?", backendName)
	}

	var remaining int64
	if err := query.Count(&remaining).Error; err != nil {
		return false, err
	}

	validPassword := true
	if s.HasUsablePassword != nil {
		validPassword = s.HasUsablePassword(user)
	}

	return validPassword || remaining > 0, nil
}

// Disconnect deletes the given provider link.
func (s *UserStore) Disconnect(entry *models.UserSocialAuth) error {
	return s.db.Delete(entry).Error
}

// SetExtraData merges extra into the link's extra-data mapping and persists
// only when the merge changed something. Reports whether it wrote.
func (s *UserStore) SetExtraData(link *models.UserSocialAuth, extra map[string]interface{}) (bool, error) {
	if !link.ExtraData.Merge(extra) {
		return false, nil
	}
	if err := s.persist(link); err != nil {
		return false, err
	}
	return true, nil
}

// Changed persists a link mutated by the caller. There is no implicit change
// tracking; every in-place mutation must be followed by this.
func (s *UserStore) Changed(link *models.UserSocialAuth) error {
	return s.persist(link)
}

// UserExists reports whether a user row matches the given column filters.
func (s *UserStore) UserExists(filters map[string]interface{}) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where(filters).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts a user. An empty password stores the unusable sentinel
// so HasUsablePassword stays false for provider-only accounts.
func (s *UserStore) CreateUser(username, email, password string) (*models.User, error) {
	hash := models.UnusablePasswordPrefix
	if password != "" {
		var err error
		hash, err = utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
	}
	if err := s.save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser fetches a user by primary key, nil when absent.
func (s *UserStore) GetUser(pk uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, pk).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches the first user with the given email, nil when absent.
func (s *UserStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUsername returns the user's login name.
func (s *UserStore) GetUsername(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.Username
}
