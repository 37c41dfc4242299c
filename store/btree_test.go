package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("one")))
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))

	cases := map[string]struct {
		kv      ReadOnlyKVStore
		key     string
		want    []byte
		wantHas bool
	}{
		"cache overrides":      {kv: cache, key: "a", want: []byte("one"), wantHas: true},
		"cache deletes":        {kv: cache, key: "b", want: nil, wantHas: false},
		"cache adds":           {kv: cache, key: "c", want: []byte("3"), wantHas: true},
		"base keeps original":  {kv: base, key: "a", want: []byte("1"), wantHas: true},
		"base keeps deleted":   {kv: base, key: "b", want: []byte("2"), wantHas: true},
		"base misses addition": {kv: base, key: "c", want: nil, wantHas: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.kv.Get([]byte(tc.key))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			has, err := tc.kv.Has([]byte(tc.key))
			require.NoError(t, err)
			assert.Equal(t, tc.wantHas, has)
		})
	}
}

func TestBTreeCacheWrite(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("one")))
	require.NoError(t, cache.Set([]byte("b"), []byte("two")))

	nested := cache.CacheWrap()
	require.NoError(t, nested.Delete([]byte("a")))
	require.NoError(t, nested.Write())

	got, err := cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got, "nested delete must reach the parent cache")

	require.NoError(t, cache.Write())
	got, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestBTreeCacheDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("one")))
	require.NoError(t, cache.Set([]byte("b"), []byte("two")))
	cache.Discard()

	// A discarded cache must not write anything, even if asked to.
	require.NoError(t, cache.Write())

	got, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	require.Len(t, got, 2)
	assert.True(t, got[0].IsSet())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.Equal(t, []byte("1"), got[0].Value())
	assert.False(t, got[1].IsSet())
	assert.Equal(t, []byte("b"), got[1].Key())
}
