// Package apitoken mints the short-lived service token the console presents to
// the records API.
package apitoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Subject = "pdpconsole"
	Scope   = "records:read records:write"
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret   []byte
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(secret, audience string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), audience: audience, ttl: ttl, now: time.Now}
}

func (i *Issuer) Configured() bool {
	return i != nil && len(i.secret) > 0
}

// Token returns an empty string when no secret is configured.
func (i *Issuer) Token() (string, error) {
	if !i.Configured() {
		return "", nil
	}
	now := i.now()
	claims := Claims{
		Scope: Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func Parse(secret, audience, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
