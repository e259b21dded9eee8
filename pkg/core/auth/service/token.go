package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"book-catalog/pkg/common/config"
	"book-catalog/pkg/core/auth/model"
)

// Claim keys shared with the session middleware.
const (
	ClaimUsername = "username"
	ClaimRole     = "rol"
)

// TokenIssuer signs login tokens with an HMAC key.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg config.JWTAuthConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	method := jwt.GetSigningMethod(cfg.SigningMethod)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported jwt signing method %q", cfg.SigningMethod)
	}
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		method: method,
		issuer: cfg.Issuer,
		ttl:    cfg.ExpireDuration,
		now:    time.Now,
	}, nil
}

func (i *TokenIssuer) Issue(username string, role model.Role) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(i.method, jwt.MapClaims{
		ClaimUsername: username,
		ClaimRole:     role.String(),
		"iss":         i.issuer,
		"iat":         now.Unix(),
		"exp":         expiresAt.Unix(),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}
