package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpclabs/research-assistant/internal/models"
)

func openCredStore(t *testing.T) *CredentialStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "research.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCredentialStore(db)
}

func TestCredentialsDefaultEmpty(t *testing.T) {
	s := openCredStore(t)

	pair, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CredentialPair{}, pair)
	assert.False(t, pair.Complete())
}

func TestCredentialsSaveGetDelete(t *testing.T) {
	s := openCredStore(t)
	ctx := context.Background()

	want := models.CredentialPair{SearchAPIKey: "tvly-abc", ModelAPIKey: "sk-xyz"}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Complete())

	require.NoError(t, s.Delete(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CredentialPair{}, got)
}

func TestCredentialsSaveOverwritesBoth(t *testing.T) {
	s := openCredStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.CredentialPair{SearchAPIKey: "a", ModelAPIKey: "b"}))
	require.NoError(t, s.Save(ctx, models.CredentialPair{SearchAPIKey: "c"}))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.CredentialPair{SearchAPIKey: "c", ModelAPIKey: ""}, got)
}
