package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"stayhub/internal/domain"
)

// Claims is the identity payload carried by the session cookie.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies stateless HS256 session tokens. There is no
// server-side session table: logout clears the cookie client-side and a
// token stays valid until its expiry.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(u domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) Verify(raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.E(domain.ErrInvalidToken, "invalid_token", "unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, domain.E(domain.ErrInvalidToken, "invalid_token", "Invalid or expired token")
	}
	return claims, nil
}
