package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/like-mike/loja/shared/db"
	"github.com/like-mike/loja/shared/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown users and wrong passwords.
var ErrInvalidCredentials = errors.New("no active account found with the given credentials")

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticate checks username and password against the store.
func Authenticate(ctx context.Context, users UserStore, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := users.GetUserByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		// Unknown users cost one comparison too.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	return hash
})
