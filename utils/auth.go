// utils/auth.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/nacl/secretbox"
)

var ErrSealedTokenInvalid = errors.New("sealed token could not be opened")

// Generate session secret key (run once initially)
func GenerateSessionSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate session secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// SessionKey turns SESSION_SECRET into a secretbox key. A base64 value of
// exactly 32 bytes is used as-is; anything else is hashed.
func SessionKey(secret string) *[32]byte {
	var key [32]byte
	if raw, err := base64.StdEncoding.DecodeString(secret); err == nil && len(raw) == 32 {
		copy(key[:], raw)
		return &key
	}
	key = sha256.Sum256([]byte(secret))
	return &key
}

// SealToken encrypts a backend bearer token for storage.
func SealToken(key *[32]byte, token string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("reading nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func OpenToken(key *[32]byte, sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return "", ErrSealedTokenInvalid
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	out, ok := secretbox.Open(nil, raw[24:], &nonce, key)
	if !ok {
		return "", ErrSealedTokenInvalid
	}
	return string(out), nil
}

// TokenExpiry reads the exp claim of a backend JWT without verifying it; the
// backend owns the signing key. ok is false when the token is not a JWT or
// carries no exp claim.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	token = StripBearer(token)
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	nd, err := claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}

// TokenExpired reports whether the token carries an exp claim in the past.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	return ok && !now.Before(exp)
}

func StripBearer(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
