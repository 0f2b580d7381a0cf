package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BootstrapPasswordSuffix is appended to generated passwords so they satisfy
// directory complexity rules (upper, lower, digit and symbol).
const BootstrapPasswordSuffix = "!aA1"

// ErrPasswordMismatch is returned by VerifyPassword when the password does not
// match the hash.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword returns a bcrypt hash of password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("invalid password hash: %w", err)
	}
}

// GeneratePassword returns 12 random alphanumeric characters.
func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 12
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}

// GenerateBootstrapPassword returns a one-time password for a recreated
// account. It is never stored or logged.
func GenerateBootstrapPassword() (string, error) {
	password, err := GeneratePassword()
	if err != nil {
		return "", err
	}
	return password + BootstrapPasswordSuffix, nil
}
