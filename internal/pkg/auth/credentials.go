package auth

import (
	"context"
	"crypto/subtle"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// CredentialVerifier decides whether a username/password pair may log in.
// Failures are apperrors credential errors tagged with the mismatched field;
// the username is always checked before the password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

var (
	errWrongUsername = apperrors.NewCredentialError("username", "Invalid username")
	errWrongPassword = apperrors.NewCredentialError("password", "Invalid password")
)

// StaticCredentials compares against a configured plain-text pair in constant time.
type StaticCredentials struct {
	Username string
	Password string
}

// Verify implements CredentialVerifier
func (s StaticCredentials) Verify(_ context.Context, username, password string) error {
	if !constantTimeEqual(username, s.Username) {
		return errWrongUsername
	}
	if !constantTimeEqual(password, s.Password) {
		return errWrongPassword
	}
	return nil
}

// HashedCredentials compares the password against a bcrypt hash.
type HashedCredentials struct {
	Username     string
	PasswordHash string
}

// Verify implements CredentialVerifier
func (h HashedCredentials) Verify(_ context.Context, username, password string) error {
	if !constantTimeEqual(username, h.Username) {
		return errWrongUsername
	}
	if !CheckPassword(h.PasswordHash, password) {
		return errWrongPassword
	}
	return nil
}

// NewCredentialVerifier prefers the bcrypt hash when one is configured.
func NewCredentialVerifier(username, password, passwordHash string) CredentialVerifier {
	if passwordHash != "" {
		return HashedCredentials{Username: username, PasswordHash: passwordHash}
	}
	return StaticCredentials{Username: username, Password: password}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
