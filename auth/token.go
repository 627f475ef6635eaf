// token.go - Access token signing and verification

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity embedded in an access token. It never carries a
// role: admin capability is always read from the user record.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 access tokens with a process-wide secret.
// It holds no mutable state and is safe for concurrent use.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer. A nil clock means time.Now.
func NewSigner(secret string, ttl time.Duration, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: now}
}

// TTL is the validity window of tokens issued by this signer.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Sign issues a token for email that expires after the signer's TTL.
func (s *Signer) Sign(email string) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Any failure is reported as ErrUnauthorized wrapping the parser error.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
