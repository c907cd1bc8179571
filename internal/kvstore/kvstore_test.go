package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetAndGet(t *testing.T) {
	store := openTestStore(t)

	err := store.Set("name", "Ada Lovelace")
	require.NoError(t, err)

	value, err := store.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", value)
}

func TestGetMissingKeyReturnsEmpty(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("never_written")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSetEmptyKeyOrValueIsNoOp(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("", "value"))
	require.NoError(t, store.Set("key", ""))

	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("phone", "555-0100"))
	require.NoError(t, store.Remove("phone"))

	value, err := store.Get("phone")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	// Removing an absent key is not an error
	assert.NoError(t, store.Remove("phone"))
}

func TestClearAll(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("isloggedin", "true"))
	require.NoError(t, store.Set("email", "a@b.com"))

	require.NoError(t, store.ClearAll())

	for _, key := range []string{"isloggedin", "email"} {
		value, err := store.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "", value)
	}
}
