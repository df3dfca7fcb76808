// Package auth manages the single admin password and the session tokens
// issued against it.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hms/hms/internal/platform/settings"
)

const (
	passwordKey = "password"

	minPasswordLength = 4
	tokenTTL          = 12 * time.Hour
)

var (
	ErrPasswordNotSet     = errors.New("password has not been set")
	ErrPasswordAlreadySet = errors.New("password has already been set")
	ErrWrongPassword      = errors.New("incorrect password")
)

type Service struct {
	store     *settings.Store
	jwtSecret []byte
	now       func() time.Time
}

func NewService(store *settings.Store, jwtSecret string) *Service {
	return &Service{store: store, jwtSecret: []byte(jwtSecret), now: time.Now}
}

func hashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// IsSet reports whether an admin password has been initialized.
func (s *Service) IsSet() (bool, error) {
	_, ok, err := s.store.Get(passwordKey)
	return ok, err
}

// Initialize sets the admin password for the first time.
func (s *Service) Initialize(pw string) error {
	if err := validatePassword(pw); err != nil {
		return err
	}
	set, err := s.IsSet()
	if err != nil {
		return err
	}
	if set {
		return ErrPasswordAlreadySet
	}
	return s.store.Set(passwordKey, hashPassword(pw))
}

// Verify checks the password and issues a session token on success.
func (s *Service) Verify(pw string) (string, error) {
	stored, ok, err := s.store.Get(passwordKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrPasswordNotSet
	}
	if hashPassword(pw) != stored {
		return "", ErrWrongPassword
	}
	return s.issueToken()
}

// Change replaces the admin password after verifying the current one.
func (s *Service) Change(current, next string) error {
	stored, ok, err := s.store.Get(passwordKey)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPasswordNotSet
	}
	if hashPassword(current) != stored {
		return ErrWrongPassword
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	return s.store.Set(passwordKey, hashPassword(next))
}

func (s *Service) issueToken() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
