package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupSetGetDelete(t *testing.T) {
	l := newLookup[string](4)
	l.set("a", 7)

	idx, ok := l.get("a")
	require.True(t, ok)
	require.Equal(t, int32(7), idx)
	require.Equal(t, 1, l.len())

	l.delete("a")
	_, ok = l.get("a")
	require.False(t, ok)
	require.Equal(t, 0, l.len())
}

func TestLookupTombstoneLifecycle(t *testing.T) {
	l := newLookup[string](4)
	l.setTombstone("a", 3)

	v, ok := l.tombstoneVersion("a")
	require.True(t, ok)
	require.Equal(t, int64(3), v)

	l.clearTombstone("a")
	_, ok = l.tombstoneVersion("a")
	require.False(t, ok)
}
