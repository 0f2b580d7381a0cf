package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt encoded")
			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 100))
	require.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", "correct-passwor"} {
		t.Run(wrong, func(t *testing.T) {
			err := VerifyPassword(wrong, hash)
			require.ErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	for _, invalid := range []string{"", "not-a-hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"} {
		err := VerifyPassword("test-password", invalid)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrPasswordMismatch)
	}
}

func TestGeneratePassword(t *testing.T) {
	for range 10 {
		password, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, password, 12)

		for _, char := range password {
			valid := (char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9')
			require.True(t, valid, "password should only contain alphanumeric characters")
		}
	}
}

func TestGeneratePassword_Uniqueness(t *testing.T) {
	const count = 100
	passwords := make(map[string]bool, count)

	for range count {
		password, err := GeneratePassword()
		require.NoError(t, err)
		require.NotContains(t, passwords, password, "duplicate password generated")
		passwords[password] = true
	}
}

func TestGenerateBootstrapPassword(t *testing.T) {
	password, err := GenerateBootstrapPassword()
	require.NoError(t, err)
	require.Len(t, password, 12+len(BootstrapPasswordSuffix))
	require.True(t, strings.HasSuffix(password, "!aA1"))
}
