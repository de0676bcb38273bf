// Package auth gates the tracker behind a single shared password and issues
// signed session cookies once it has been entered.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks login attempts against the configured password.
type Verifier struct {
	hash []byte
}

// NewVerifier accepts either a bcrypt hash or a plain password; the hash
// wins when both are set. A plain password is hashed once here so it is
// never compared in the clear.
func NewVerifier(plain, hash string) (*Verifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgBadPasswordHash, err)
		}
		return &Verifier{hash: []byte(hash)}, nil
	}
	if plain == "" {
		return nil, errors.New(ErrMsgNoPassword)
	}

	h, err := HashPassword(plain)
	if err != nil {
		return nil, err
	}
	return &Verifier{hash: []byte(h)}, nil
}

// Verify reports whether password matches.
func (v *Verifier) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}

// HashPassword returns the bcrypt hash of password for APP_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgHashPassword, err)
	}
	return string(h), nil
}
