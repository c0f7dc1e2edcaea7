package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the engine's secrets in the OS keychain.
	KeyringService = "internmatch"

	AdminTokenAccount = "admin-api-token"

	// AdminTokenEnv overrides the keychain, for containers without one.
	AdminTokenEnv = "INTERNMATCH_ADMIN_TOKEN"
)

var ErrNoAdminToken = errors.New("admin token not found (set it in keychain or via " + AdminTokenEnv + ")")

func GetAdminToken() (string, error) {
	if tok := strings.TrimSpace(os.Getenv(AdminTokenEnv)); tok != "" {
		return tok, nil
	}
	tok, err := keyring.Get(KeyringService, AdminTokenAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}
	return "", ErrNoAdminToken
}

func SetAdminToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, AdminTokenAccount, token)
}

func DeleteAdminToken() error {
	return keyring.Delete(KeyringService, AdminTokenAccount)
}

// EnsureAdminToken returns the configured token, generating and storing a
// new one on first run. created reports whether it was generated.
func EnsureAdminToken() (token string, created bool, err error) {
	if tok, err := GetAdminToken(); err == nil {
		return tok, false, nil
	}
	tok, err := RotateAdminToken()
	if err != nil {
		return "", false, err
	}
	return tok, true, nil
}

// RotateAdminToken replaces the keychain token with a fresh random one.
func RotateAdminToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	tok := hex.EncodeToString(b[:])
	if err := SetAdminToken(tok); err != nil {
		return "", err
	}
	return tok, nil
}

// TokenMatches compares in constant time.
func TokenMatches(want, got string) bool {
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
