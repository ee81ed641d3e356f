package openlist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	store := TokenStore{Path: filepath.Join(t.TempDir(), "state", "token")}

	saved := &Token{Server: "http://nas:5244", Username: "alice", Token: "jwt"}
	require.NoError(t, store.Save(saved))
	assert.False(t, saved.SavedAt.IsZero(), "Save should stamp SavedAt")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://nas:5244", got.Server)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "jwt", got.Token)
	assert.WithinDuration(t, saved.SavedAt, got.SavedAt, time.Second)

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenStore_Missing(t *testing.T) {
	store := TokenStore{Path: filepath.Join(t.TempDir(), "token")}

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.NoError(t, store.Clear())
}

func TestTokenStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := TokenStore{Path: path}.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoToken)
	assert.Contains(t, err.Error(), "parse token")
}

func TestTokenStore_EmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":"s","username":"u","token":""}`), 0o600))

	_, err := TokenStore{Path: path}.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenStore_Clear(t *testing.T) {
	store := TokenStore{Path: filepath.Join(t.TempDir(), "token")}
	require.NoError(t, store.Save(&Token{Server: "s", Username: "u", Token: "t"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestToken_Matches(t *testing.T) {
	tok := &Token{Server: "http://nas:5244", Username: "alice", Token: "jwt"}

	assert.True(t, tok.Matches("http://nas:5244", "alice"))
	assert.False(t, tok.Matches("http://nas:5244", "bob"))
	assert.False(t, tok.Matches("http://other:5244", "alice"))
	assert.False(t, (*Token)(nil).Matches("http://nas:5244", "alice"))
	assert.False(t, (&Token{Server: "s", Username: "u"}).Matches("s", "u"))
}
