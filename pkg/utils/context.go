package utils

import (
	"context"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// GetClaimsFromContext returns the verified token payload set by the bearer middleware.
func GetClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claimsVal := ctx.Value(ClaimsKey)
	if claimsVal == nil {
		return nil, false
	}

	claims, ok := claimsVal.(*TokenClaims)
	return claims, ok && claims != nil
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (int, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.Role, true
}

func SetClaimsContext(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
