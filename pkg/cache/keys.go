package cache

import (
	"context"
	"errors"
)

// BlockTokenKey marks a revoked token.
func BlockTokenKey(token string) string {
	return "BLOCK_TOKEN_" + token
}

// TokenKey holds the verified payload of a token until it expires.
func TokenKey(token string) string {
	return "TOKEN_" + token
}

// IsBlocked reports whether token was put on the block list.
func IsBlocked(ctx context.Context, c Cache, token string) (bool, error) {
	_, err := c.Get(ctx, BlockTokenKey(token))
	if errors.Is(err, ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
