// Package expirytest provides a contract suite shared by every expiry.Store implementation.
package expirytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionexpiry/core/expiry"
)

// RunStoreContract checks the behaviour expiry.Tracker relies on.
// The store must be empty for the keys used here.
func RunStoreContract(t *testing.T, store expiry.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "expiryTimecontract-missing")
		assert.ErrorIs(t, err, expiry.ErrNotFound)
	})

	t.Run("set then get round trips the value", func(t *testing.T) {
		key := "expiryTimecontract-set"
		require.NoError(t, store.Set(ctx, key, "1700000000"))

		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "1700000000", value)
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		key := "expiryTimecontract-overwrite"
		require.NoError(t, store.Set(ctx, key, "1"))
		require.NoError(t, store.Set(ctx, key, "2"))

		value, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "2", value)
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		key := "expiryTimecontract-remove"
		require.NoError(t, store.Set(ctx, key, "1700000000"))
		require.NoError(t, store.Remove(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, expiry.ErrNotFound)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		key := "expiryTimecontract-idempotent"
		require.NoError(t, store.Remove(ctx, key))
		require.NoError(t, store.Remove(ctx, key))
	})
}
