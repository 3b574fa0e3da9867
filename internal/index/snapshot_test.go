package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	idx := NewIndex()
	idx.Add(42, Posting{AnchorFrame: 3, TrackID: 0})
	idx.Add(42, Posting{AnchorFrame: 7, TrackID: 1})

	registry := NewTrackRegistry()
	registry.Register("track-a")
	registry.Register("track-b")

	require.NoError(t, Save(dir, idx, registry))
	require.True(t, Exists(dir))

	loadedIdx, loadedRegistry, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, idx, loadedIdx)
	require.Equal(t, registry.Len(), loadedRegistry.Len())

	label, ok := loadedRegistry.Label(0)
	require.True(t, ok)
	require.Equal(t, "track-a", label)
}

func TestLoad_MissingSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.False(t, Exists(dir))

	_, _, err := Load(dir)
	require.Error(t, err)
}

func TestTrackRegistry_DenseIDs(t *testing.T) {
	registry := NewTrackRegistry()
	idA := registry.Register("a")
	idB := registry.Register("b")
	idC := registry.Register("c")

	require.Equal(t, uint32(0), idA)
	require.Equal(t, uint32(1), idB)
	require.Equal(t, uint32(2), idC)
	require.Equal(t, 3, registry.Len())
}
