package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasscare/compass/internal/kv"
	"github.com/compasscare/compass/pkg/types"
)

func TestApplyWritesAllKeys(t *testing.T) {
	mem := kv.NewMemStore()
	require.NoError(t, mem.Set("a", "old"))

	err := Apply(mem, []Write{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "c", Value: "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, mem.Snapshot())
}

func TestApplyRollsBackOnMidwayFailure(t *testing.T) {
	mem := kv.NewMemStore()
	require.NoError(t, mem.Set("a", "old-a"))
	require.NoError(t, mem.Set("c", "old-c"))
	before := mem.Snapshot()

	// First write succeeds, second fails, rollback re-writes "a" and must
	// remove "b" because it was absent beforehand.
	mem.FailSetOnce(1)
	err := Apply(mem, []Write{
		{Key: "a", Value: "new-a"},
		{Key: "b", Value: "new-b"},
		{Key: "c", Value: "new-c"},
	})
	require.ErrorIs(t, err, types.ErrQuotaExceeded)
	assert.Equal(t, before, mem.Snapshot(), "every touched key is back in its prior state")
}

func TestApplySnapshotsEachKeyOnce(t *testing.T) {
	mem := kv.NewMemStore()
	require.NoError(t, mem.Set("a", "old"))

	// The duplicate write lands last; a failure afterwards must restore the
	// original value, not the intermediate one.
	mem.FailSetOnce(2)
	err := Apply(mem, []Write{
		{Key: "a", Value: "first"},
		{Key: "a", Value: "second"},
		{Key: "b", Value: "1"},
	})
	require.ErrorIs(t, err, types.ErrQuotaExceeded)

	v, ok, getErr := mem.Get("a")
	require.NoError(t, getErr)
	require.True(t, ok)
	assert.Equal(t, "old", v)
}
