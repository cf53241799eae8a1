// Package otp generates and matches the short numeric one-time codes used to
// authenticate physical handovers. Codes are deliberately short: the delivery
// channel is a verbal exchange at a counter, and security rests on the expiry
// window plus the attempt ceiling, not on code length.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"petreserve-backend/internal/domain"
)

const (
	CodeLength         = 6
	DefaultTTL         = 15 * time.Minute
	DefaultMaxAttempts = 5
)

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a cryptographically random, zero-padded 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NewSalt returns a fresh 16-byte hex salt for one issuance.
func NewSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashCode computes the at-rest form of a code. The plaintext is never stored.
func HashCode(code, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + code))
	return hex.EncodeToString(sum[:])
}

// Issue builds a fresh at-rest OTP record and returns it with the plaintext
// code. Issuing over an unverified prior record invalidates the old code.
func Issue(now time.Time, ttl time.Duration) (*domain.HandoverOTP, string, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, "", err
	}
	salt, err := NewSalt()
	if err != nil {
		return nil, "", err
	}
	rec := &domain.HandoverOTP{
		CodeHash:  HashCode(code, salt),
		Salt:      salt,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	return rec, code, nil
}

// Matches compares a candidate code against the stored record in constant
// time. It performs no expiry or attempt accounting; that belongs to the
// verification flow.
func Matches(rec *domain.HandoverOTP, candidate string) bool {
	want := []byte(rec.CodeHash)
	got := []byte(HashCode(candidate, rec.Salt))
	return subtle.ConstantTimeCompare(want, got) == 1
}
