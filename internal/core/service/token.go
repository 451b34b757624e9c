package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookworks/book-app/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the claim set embedded in every issued token. Subject is
// the principal's username at issuance time; the role is fixed at creation
// and is never re-validated against the store after issuance.
type TokenClaims struct {
	Role domain.Role `json:"role"`
	Name string      `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and parses signed, time-bound HS256 tokens. The
// signing key and TTL are process-wide configuration, loaded once at
// startup and never rotated within a running process.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the principal's identity and role.
func (t *TokenIssuer) Issue(p *domain.Principal) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Role: p.Role,
		Name: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse validates the signature, algorithm, and expiry of a token and
// returns its claims.
func (t *TokenIssuer) Parse(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if tk.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
