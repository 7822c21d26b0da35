// Package auth implements account credential storage: bcrypt-class
// password hashing and the login/register business logic consumed by
// the server's HELLO/LOGIN/REGISTER handlers. Persistence of the
// account record itself is delegated to store.Store.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Account is a persisted credential record's
// `accounts(id, username, password_hash, created_at)` table.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    int64 // unix seconds
}

// Store is the persistence surface auth.Service needs; store.Store
// satisfies it.
type Store interface {
	AccountByUsername(ctx context.Context, username string) (*Account, error)
	CreateAccount(ctx context.Context, username, passwordHash string, createdAt int64) (*Account, error)
}

// Service validates credentials and creates accounts, hashing with
// bcrypt at DefaultCost.
type Service struct {
	store Store
}

// NewService wraps a persistence store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// HashPassword bcrypt-hashes a raw password for storage.
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt hash.
func VerifyPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Register creates a new account with a freshly hashed password. It
// fails if the username is already taken.
func (s *Service) Register(ctx context.Context, username, password string, nowUnix int64) (*Account, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("auth: username and password required")
	}
	if existing, err := s.store.AccountByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("auth: lookup username: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("auth: username %q already taken", username)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	account, err := s.store.CreateAccount(ctx, username, hash, nowUnix)
	if err != nil {
		return nil, fmt.Errorf("auth: create account: %w", err)
	}
	return account, nil
}

// Login validates credentials against the stored hash, returning the
// account on success.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, error) {
	account, err := s.store.AccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("auth: lookup username: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("auth: invalid username or password")
	}
	if !VerifyPassword(account.PasswordHash, password) {
		return nil, fmt.Errorf("auth: invalid username or password")
	}
	return account, nil
}
