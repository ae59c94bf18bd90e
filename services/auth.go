package services

import (
	"errors"
	"fmt"

	"streamvault/models"
	"streamvault/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles account registration and password verification
type AuthService struct {
	users *repository.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account with a bcrypt-hashed password. A taken
// username or email surfaces as repository.ErrDuplicate.
func (a *AuthService) Register(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := a.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a username/password pair
func (a *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := a.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
