package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_ManifestKeys(t *testing.T) {
	s := New(NewMemoryStore())
	ctx := context.Background()

	keys, ok, err := s.ManifestKeys(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, keys)

	require.NoError(t, s.SetManifestKeys(ctx, []string{"a", " b ", "", "a", "c"}))
	keys, ok, err = s.ManifestKeys(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	// an explicitly empty list is still "set"
	require.NoError(t, s.SetManifestKeys(ctx, nil))
	keys, ok, err = s.ManifestKeys(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, keys)
}

func TestSettings_ManifestNames(t *testing.T) {
	s := New(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, s.SetManifestName(ctx, "k1", "Main"))
	require.NoError(t, s.SetManifestName(ctx, "k2", "Other"))
	names, err := s.ManifestNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k1": "Main", "k2": "Other"}, names)

	require.NoError(t, s.SetManifestName(ctx, "k1", ""))
	names, err = s.ManifestNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k2": "Other"}, names)
}

func TestSettings_Toggle(t *testing.T) {
	store := NewMemoryStore()
	s := New(store)
	ctx := context.Background()

	assert.True(t, s.Toggle(ctx, ToggleShowExtra, true))
	require.NoError(t, s.SetToggle(ctx, ToggleShowExtra, false))
	assert.False(t, s.Toggle(ctx, ToggleShowExtra, true))

	// unreadable values fall back to the default
	require.NoError(t, store.Set(ctx, ToggleShowEvents, "not json"))
	assert.True(t, s.Toggle(ctx, ToggleShowEvents, true))
}
