package artemis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
	portmocks "github.com/bnema/artemis-companion-cli/internal/ports/mocks"
)

func TestTokenCacheServesRepeatedLookupsFromMemory(t *testing.T) {
	t.Parallel()

	platform := portmocks.NewMockPlatformClient(t)
	platform.EXPECT().VCSAccessToken(mock.Anything, domain.ParticipationID(100)).Return("vcpat-abc", nil).Once()

	cache := NewTokenCache(platform, 0)
	for range 3 {
		token, err := cache.VCSAccessToken(context.Background(), 100)
		require.NoError(t, err)
		assert.Equal(t, "vcpat-abc", token)
	}
}

func TestTokenCacheDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	platform := portmocks.NewMockPlatformClient(t)
	platform.EXPECT().VCSAccessToken(mock.Anything, domain.ParticipationID(100)).Return("", domain.ErrTokenNotFound).Once()
	platform.EXPECT().CreateVCSAccessToken(mock.Anything, domain.ParticipationID(100)).Return("vcpat-new", nil).Once()

	cache := NewTokenCache(platform, 0)

	_, err := cache.VCSAccessToken(context.Background(), 100)
	require.ErrorIs(t, err, domain.ErrTokenNotFound)

	created, err := cache.CreateVCSAccessToken(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "vcpat-new", created)

	token, err := cache.VCSAccessToken(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "vcpat-new", token)
}

func TestTokenCacheFlush(t *testing.T) {
	t.Parallel()

	platform := portmocks.NewMockPlatformClient(t)
	platform.EXPECT().VCSAccessToken(mock.Anything, domain.ParticipationID(5)).Return("first", nil).Once()
	platform.EXPECT().VCSAccessToken(mock.Anything, domain.ParticipationID(5)).Return("second", nil).Once()

	cache := NewTokenCache(platform, 0)

	token, err := cache.VCSAccessToken(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	cache.Flush()

	token, err = cache.VCSAccessToken(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestTokenCachePassesThroughOtherCalls(t *testing.T) {
	t.Parallel()

	platform := portmocks.NewMockPlatformClient(t)
	platform.EXPECT().Account(mock.Anything).Return(domain.Account{Login: "ab12cde"}, nil).Once()

	cache := NewTokenCache(platform, 0)
	account, err := cache.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ab12cde", account.Login)
}
