package usecase

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func basic(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func newAuthFixture(t *testing.T) (*fakeRepo, *utils.TokenManager, *cache.MemoryCache, AuthService) {
	t.Helper()

	repo := newFakeRepo()
	tokens := utils.NewTokenManager(utils.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	c := cache.NewMemoryCache()
	users := NewUserService(repo.User, 4, zap.NewNop())

	return repo, tokens, c, NewAuthService(repo.Repository, users, tokens, c, zap.NewNop())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	_, tokens, _, svc := newAuthFixture(t)

	user, err := svc.Register(ctx, basic("neo@example.com", "secret"))
	require.NoError(t, err)
	assert.Equal(t, "neo@example.com", user.Email)

	_, err = svc.Register(ctx, basic("neo@example.com", "secret"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Login(ctx, basic("neo@example.com", "wrong"))
	require.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "invalid login", err.Error())

	_, err = svc.Login(ctx, "Bearer abc")
	assert.ErrorIs(t, err, ErrBadRequest)

	pair, err := svc.Login(ctx, basic("neo@example.com", "secret"))
	require.NoError(t, err)

	access, err := tokens.Verify(pair.AccessToken, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int(entity.RoleUser), access.Role)

	refresh, err := tokens.Verify(pair.RefreshToken, utils.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, access.Subject, refresh.Subject)
}

func TestAuthRotateAccessToken(t *testing.T) {
	ctx := context.Background()
	_, tokens, _, svc := newAuthFixture(t)

	refreshToken, err := tokens.Issue(4, int(entity.RoleAdmin), utils.TokenTypeRefresh)
	require.NoError(t, err)
	refresh, err := tokens.Verify(refreshToken, utils.TokenTypeRefresh)
	require.NoError(t, err)

	resp, err := svc.RotateAccessToken(ctx, refresh)
	require.NoError(t, err)

	access, err := tokens.Verify(resp.AccessToken, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "4", access.Subject)
	assert.Equal(t, int(entity.RoleAdmin), access.Role)

	_, err = svc.RotateAccessToken(ctx, access)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthBlockToken(t *testing.T) {
	ctx := context.Background()
	_, tokens, c, svc := newAuthFixture(t)

	token, err := tokens.Issue(4, int(entity.RoleUser), utils.TokenTypeAccess)
	require.NoError(t, err)

	blocked, err := cache.IsBlocked(ctx, c, token)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, svc.BlockToken(ctx, token))

	blocked, err = cache.IsBlocked(ctx, c, token)
	require.NoError(t, err)
	assert.True(t, blocked)

	assert.ErrorIs(t, svc.BlockToken(ctx, "garbage"), ErrBadRequest)
}

type ttlCache struct {
	*cache.MemoryCache
	ttls map[string]time.Duration
}

func (c *ttlCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.ttls[key] = ttl
	return c.MemoryCache.Set(ctx, key, value, ttl)
}

func TestAuthBlockTokenTTL(t *testing.T) {
	ctx := context.Background()
	repo, tokens, _, _ := newAuthFixture(t)
	c := &ttlCache{MemoryCache: cache.NewMemoryCache(), ttls: map[string]time.Duration{}}

	svc := NewAuthService(repo.Repository, nil, tokens, c, zap.NewNop()).(*authService)

	token, err := tokens.Issue(4, int(entity.RoleUser), utils.TokenTypeAccess)
	require.NoError(t, err)
	claims, err := tokens.Decode(token)
	require.NoError(t, err)
	exp := claims.ExpiresAt.Time

	svc.now = func() time.Time { return exp.Add(-time.Hour) }
	require.NoError(t, svc.BlockToken(ctx, token))
	assert.Equal(t, time.Hour-30*time.Second, c.ttls[cache.BlockTokenKey(token)])

	// close to expiry the entry still lives for a moment
	svc.now = func() time.Time { return exp.Add(-10 * time.Second) }
	require.NoError(t, svc.BlockToken(ctx, token))
	assert.Equal(t, time.Millisecond, c.ttls[cache.BlockTokenKey(token)])
}
