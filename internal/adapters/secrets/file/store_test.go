package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/artemis-companion-cli/internal/domain"
)

const sessionKey = "artemis/artemis.example.org/session"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "   ", ".", "..", "../escape", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			err := store.Put(ctx, key, "value")
			require.Error(t, err)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sessionKey, "jwt=abc"))
	require.NoError(t, store.Put(ctx, sessionKey, "jwt=def"))

	value, err := store.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "jwt=def", value)

	info, err := os.Stat(filepath.Join(root, "artemis", "artemis.example.org", "session"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "artemis", "artemis.example.org"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreGetMissingSecretIsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), sessionKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sessionKey, "jwt=abc"))
	require.NoError(t, store.Delete(ctx, sessionKey))
	require.NoError(t, store.Delete(ctx, sessionKey))

	_, err := store.Get(ctx, sessionKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
