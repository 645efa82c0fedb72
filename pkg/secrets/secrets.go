// Package secrets groups password and secret hashing helpers shared by the
// authentication bridge and provisioning tooling.
package secrets

import (
	"crypto/md5" //nolint:gosec // legacy unsalted-hash fallback, verification only
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "membergate/pkg/domain-errors"
)

// Generate creates a cryptographically secure random secret.
// Returns a base64-encoded string suitable for use as client secrets.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash creates a bcrypt hash of the provided secret.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "secret is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash secret")
	}
	return string(hashed), nil
}

// Verify checks if a plaintext secret matches a bcrypt hash.
func Verify(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid secret")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify secret")
	}
	return nil
}

// VerifyWithLegacy checks a secret against a stored hash, accepting either a
// bcrypt hash or the legacy unsalted md5 form older installations still
// carry. It reports a plain boolean since callers use it for diagnostics
// rather than gating.
func VerifyWithLegacy(secret, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	if Verify(secret, storedHash) == nil {
		return true
	}
	legacy := md5.Sum([]byte(secret)) //nolint:gosec // comparison against legacy hashes only
	encoded := hex.EncodeToString(legacy[:])
	return subtle.ConstantTimeCompare([]byte(encoded), []byte(storedHash)) == 1
}
