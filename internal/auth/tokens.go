// Package auth issues and parses the JWT pairs handed out by the /v1/jwt endpoints.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// Principal is the authenticated identity of a request. A nil *Principal is an anonymous caller.
type Principal struct {
	ID       int
	Username string
}

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	TokenType TokenType `json:"token_type"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() Principal {
	return Principal{ID: c.UserID, Username: c.Username}
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue signs a token of the given type for p.
func (i *Issuer) Issue(p Principal, typ TokenType) (string, error) {
	ttl := i.accessTTL
	if typ == RefreshToken {
		ttl = i.refreshTTL
	}

	now := i.now()
	claims := Claims{
		TokenType: typ,
		UserID:    p.ID,
		Username:  p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Pair returns a fresh access and refresh token.
func (i *Issuer) Pair(p Principal) (access, refresh string, err error) {
	if access, err = i.Issue(p, AccessToken); err != nil {
		return "", "", err
	}
	if refresh, err = i.Issue(p, RefreshToken); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse validates signature, expiry and token type. An empty typ accepts either type.
func (i *Issuer) Parse(token string, typ TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if typ != "" && claims.TokenType != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
