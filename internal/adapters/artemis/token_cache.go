package artemis

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	"github.com/bnema/artemis-companion-cli/internal/ports"
)

const DefaultTokenTTL = 15 * time.Minute

// TokenCache memoizes participation VCS tokens in front of a PlatformClient.
type TokenCache struct {
	ports.PlatformClient
	cache *gocache.Cache
}

var _ ports.PlatformClient = (*TokenCache)(nil)

func NewTokenCache(client ports.PlatformClient, ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCache{PlatformClient: client, cache: gocache.New(ttl, 2*ttl)}
}

func (c *TokenCache) VCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error) {
	key := cacheKey(participationID)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(string), nil
	}

	token, err := c.PlatformClient.VCSAccessToken(ctx, participationID)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(key, token)
	return token, nil
}

func (c *TokenCache) CreateVCSAccessToken(ctx context.Context, participationID domain.ParticipationID) (string, error) {
	token, err := c.PlatformClient.CreateVCSAccessToken(ctx, participationID)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(cacheKey(participationID), token)
	return token, nil
}

// Flush drops every cached token, e.g. on logout.
func (c *TokenCache) Flush() {
	c.cache.Flush()
}

func cacheKey(participationID domain.ParticipationID) string {
	return "vcs-token:" + strconv.FormatInt(int64(participationID), 10)
}
