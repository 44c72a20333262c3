// Package auth issues and verifies the bearer tokens that identify the
// acting account of a ledger request.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

const issuer = "crowdfunding-ledger"

// ErrInvalidToken is returned for every token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the caller address in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Account returns the address the token was issued for.
func (c *Claims) Account() (domain.Address, error) {
	return domain.ParseAddress(c.Subject)
}

// GenerateJWT creates an HS256 token for account. If expiration is not
// positive, 24h is used. No token is issued for a reserved account such as
// the custody account.
func GenerateJWT(secret string, account domain.Address, expiration time.Duration, reserved ...domain.Address) (string, error) {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	if account.IsZero() {
		return "", fmt.Errorf("generate token: %w", domain.ErrInvalidAddress)
	}
	if slices.Contains(reserved, account) {
		return "", fmt.Errorf("generate token for %s: %w", account, domain.ErrCustodyAccount)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT verifies tokenStr and returns the account it identifies. Tokens
// whose subject is one of the reserved accounts are rejected.
func ParseJWT(secret string, tokenStr string, reserved ...domain.Address) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return domain.ZeroAddress, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.ZeroAddress, ErrInvalidToken
	}
	account, err := claims.Account()
	if err != nil || account.IsZero() {
		return domain.ZeroAddress, ErrInvalidToken
	}
	if slices.Contains(reserved, account) {
		return domain.ZeroAddress, fmt.Errorf("%w: %w", ErrInvalidToken, domain.ErrCustodyAccount)
	}
	return account, nil
}
