package utils // package utils provides helpers for signing and checking form tokens

import (
	"crypto/rand" // secure random number generation
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidFormToken is returned by VerifyFormToken for any token that is
// malformed, expired, or signed with another key.
var ErrInvalidFormToken = errors.New("invalid form token")

// FormToken is a signed CSRF token and its expiry.  The same string is set
// in the _csrf cookie and echoed back by forms in the csrf_token field.
type FormToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewFormToken builds and signs an HS256 JWT carrying a random nonce.  The
// nonce makes every issued token unique; the signature ties it to this
// server's secret so a token minted elsewhere is rejected.
func NewFormToken(secret string, ttl time.Duration) (FormToken, error) {
	nonce, err := randomHex(16)
	if err != nil {
		return FormToken{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		ID:        nonce,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return FormToken{}, err
	}
	return FormToken{Token: signed, Exp: exp}, nil
}

// VerifyFormToken checks the signature and expiry of raw.
func VerifyFormToken(secret, raw string) error {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		// reject anything that is not HMAC, e.g. alg=none
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidFormToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return ErrInvalidFormToken
	}
	return nil
}

// randomHex returns a hex string generated from n bytes of secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
