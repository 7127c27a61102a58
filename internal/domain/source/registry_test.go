package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howlerhq/howler-api/pkg/apperror"
)

func TestRegistryAddAndList(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(Source{Username: "alice"}))
	require.NoError(t, r.Add(Source{Username: "bob"}))

	assert.True(t, r.Has("alice"))
	assert.False(t, r.Has("carol"))
	assert.Equal(t, 2, r.Len())

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Username)
	assert.Equal(t, "bob", list[1].Username)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Source{Username: "alice"}))

	err := r.Add(Source{Username: "alice"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Source{Username: "alice"}))
	require.NoError(t, r.Add(Source{Username: "bob"}))

	require.NoError(t, r.Remove("alice"))
	assert.False(t, r.Has("alice"))
	assert.Equal(t, 1, r.Len())

	err := r.Remove("alice")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRegistryRestoreReplacesContents(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Source{Username: "old"}))

	restored := []Source{{Username: "alice"}, {Username: "bob"}}
	r.Restore(restored)

	assert.False(t, r.Has("old"))
	assert.Equal(t, 2, r.Len())

	// The registry keeps its own copy of the restored slice.
	restored[0].Username = "mutated"
	assert.True(t, r.Has("alice"))
}
