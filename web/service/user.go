package service

import (
	"time"

	"minibook/config"
	"minibook/database"
	"minibook/database/model"
	"minibook/logger"
	"minibook/util/crypto"
	"minibook/web/forms"

	"github.com/google/uuid"
)

// UserService implements account creation and credential checks.
type UserService struct{}

// RegisterParams carries validated signup input. Password is the plaintext
// submitted by the user; it is hashed here and discarded.
type RegisterParams struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	Photo         string
	TermsAccepted bool
}

// CountUsers returns the total number of registered accounts.
func (s *UserService) CountUsers() (int64, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).Count(&count).Error
	return count, err
}

// CanRegister reports whether the global user cap still has room.
func (s *UserService) CanRegister() (bool, error) {
	count, err := s.CountUsers()
	if err != nil {
		return false, err
	}
	return count < int64(config.GetMaxUsers()), nil
}

// EmailTaken reports whether an account already uses the email. The lookup
// is case-insensitive because emails are stored lowercased.
func (s *UserService) EmailTaken(email string) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(model.User{}).
		Where("email = ?", forms.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// Register persists a new account. The cap and email uniqueness are
// re-checked here so the service holds the invariants even when a caller
// skips the pre-checks.
func (s *UserService) Register(p RegisterParams) (*model.User, error) {
	ok, err := s.CanRegister()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCapacityExceeded
	}

	taken, err := s.EmailTaken(p.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(p.Password)
	if err != nil {
		return nil, err
	}

	photo := p.Photo
	if photo == "" {
		photo = config.GetDefaultProfilePhoto()
	}

	user := &model.User{
		Id:            uuid.NewString(),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         forms.NormalizeEmail(p.Email),
		PasswordHash:  hash,
		TermsAccepted: p.TermsAccepted,
		Photo:         photo,
		CreatedAt:     time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	logger.Infof("registered new user %s", user.Email)
	return user, nil
}

// CheckUser verifies login credentials. It distinguishes an unknown email
// (ErrNotFound) from a wrong password (ErrInvalidCredentials) so the login
// page can say which one happened, matching the original behavior.
func (s *UserService) CheckUser(email string, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", forms.NormalizeEmail(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(id string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}
