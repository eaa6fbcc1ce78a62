package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Session binds a cookie token to a user id and role for its lifetime.
type Session struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists sessions keyed by the sha256 of the cookie token.
// Get returns (nil, nil) for unknown or expired tokens.
type Store interface {
	Create(ctx context.Context, token string, sess *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// NewToken returns a fresh 32-byte random token, hex encoded.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("could not generate session token")
	}
	return hex.EncodeToString(buf), nil
}

// hashToken derives the storage key for a token. Tokens are never stored
// in plain form.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
