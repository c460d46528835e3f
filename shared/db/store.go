package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("client with this email already exists")
	ErrUnknownClient  = errors.New("client does not exist")
	ErrDuplicateUser  = errors.New("user already exists")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Store runs the application's queries against PostgreSQL.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping is used by the health endpoints.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// translate maps driver errors onto the package's sentinel errors.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			switch pqErr.Constraint {
			case "clients_email_key":
				return ErrDuplicateEmail
			case "users_username_key":
				return ErrDuplicateUser
			}
		case pqForeignKeyViolation:
			return ErrUnknownClient
		}
	}
	return err
}
