// Package auth holds the cryptographic and validation primitives consumed by
// the session services: the session token codec, password hashing and
// registration input checks.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMalformedClaims is returned for a correctly signed token that lacks a
// subject or an expiry.
var ErrMalformedClaims = errors.New("token claims are incomplete")

// Claims is the signed payload: the standard claims plus the owning user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Payload is what a verified token carries.
type Payload struct {
	Subject   string
	ExpiresAt time.Time
}

// JWTCodec signs and verifies HS256 session tokens.
//
// Verify checks the signature and structure only. Expiry is reported back to
// the caller and never enforced here, so a stale but stored token can still
// be decoded.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secretKey []byte) *JWTCodec {
	return &JWTCodec{secret: secretKey}
}

// Sign mints a token for subject expiring at expiresAt. Every call yields a
// distinct token thanks to a random jti.
func (c *JWTCodec) Sign(subject string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		UserID: subject,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (c *JWTCodec) Verify(tokenString string) (*Payload, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}

	if claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, ErrMalformedClaims
	}

	return &Payload{Subject: claims.UserID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
