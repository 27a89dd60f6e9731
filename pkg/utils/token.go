package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken means the Authorization value does not have the expected shape.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidToken means signature, expiry or token type verification failed.
	ErrInvalidToken = errors.New("invalid or expired token")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims is the JWT payload: sub carries the user id.
type TokenClaims struct {
	Role int       `json:"role"`
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(config JWTConfig) *TokenManager {
	accessTTL := config.AccessTTL
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := config.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}

	return &TokenManager{
		accessSecret:  []byte(config.AccessSecret),
		refreshSecret: []byte(config.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (m *TokenManager) secret(tokenType TokenType) []byte {
	if tokenType == TokenTypeRefresh {
		return m.refreshSecret
	}
	return m.accessSecret
}

func (m *TokenManager) ttl(tokenType TokenType) time.Duration {
	if tokenType == TokenTypeRefresh {
		return m.refreshTTL
	}
	return m.accessTTL
}

// Issue signs an HS256 token of the given type for the user.
func (m *TokenManager) Issue(userID int64, role int, tokenType TokenType) (string, error) {
	now := m.now()
	claims := &TokenClaims{
		Role: role,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl(tokenType))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret(tokenType))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Verify checks signature and expiry with the secret of tokenType and
// requires the payload type to match.
func (m *TokenManager) Verify(tokenString string, tokenType TokenType) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret(tokenType), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, tokenType)
	}

	return claims, nil
}

// VerifyAny verifies the token with the secret of the type it claims to be.
func (m *TokenManager) VerifyAny(tokenString string) (*TokenClaims, error) {
	claims, err := m.Decode(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	switch claims.Type {
	case TokenTypeAccess, TokenTypeRefresh:
		return m.Verify(tokenString, claims.Type)
	default:
		return nil, fmt.Errorf("%w: unknown token type %q", ErrInvalidToken, claims.Type)
	}
}

// Decode reads the payload without verifying the signature.
func (m *TokenManager) Decode(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// ParseBasicToken splits "Basic base64(email:password)".
func ParseBasicToken(rawToken string) (string, string, error) {
	parts := strings.Split(rawToken, " ")
	if len(parts) != 2 {
		return "", "", ErrMalformedToken
	}

	if strings.ToLower(parts[0]) != "basic" {
		return "", "", ErrMalformedToken
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", ErrMalformedToken
	}

	credentials := strings.Split(string(decoded), ":")
	if len(credentials) != 2 {
		return "", "", ErrMalformedToken
	}

	return credentials[0], credentials[1], nil
}

// ExtractBearerToken returns the token part of "Bearer <token>".
func ExtractBearerToken(rawToken string) (string, error) {
	parts := strings.Split(rawToken, " ")
	if len(parts) != 2 {
		return "", ErrMalformedToken
	}

	if strings.ToLower(parts[0]) != "bearer" {
		return "", ErrMalformedToken
	}

	return parts[1], nil
}
