// Package token issues and parses the JWTs handed out at login.
//
// Access tokens authorize API calls and are what the UI stores in its
// token cookie. Refresh tokens can only be exchanged for a new access
// token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	Access  Type = "access"
	Refresh Type = "refresh"
)

var (
	ErrInvalid   = errors.New("token is invalid or expired")
	ErrWrongType = errors.New("token has wrong type")
)

// Claims carried by both token types.
type Claims struct {
	Type     Type   `json:"token_type"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs tokens with an HMAC secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration { return m.accessTTL }

// IssuePair returns a fresh access and refresh token for the user.
func (m *Manager) IssuePair(userID, username string) (access, refresh string, err error) {
	access, err = m.issue(Access, userID, username, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.issue(Refresh, userID, username, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess returns only an access token.
func (m *Manager) IssueAccess(userID, username string) (string, error) {
	return m.issue(Access, userID, username, m.accessTTL)
}

func (m *Manager) issue(typ Type, userID, username string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Type:     typ,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Parse verifies raw and checks that it is of the wanted type.
func (m *Manager) Parse(raw string, want Type) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if claims.Type != want {
		return nil, ErrWrongType
	}
	return claims, nil
}
