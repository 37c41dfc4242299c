package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/custody/errors"
)

// MemStore returns a store that keeps everything in memory. It is meant
// for tests and nothing is persisted.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// ShowOpser returns an ordered list of all operations performed
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns an in-memory store along with the log of all write
// operations run on it.
func LogableStore() (CacheableKVStore, ShowOpser) {
	e := EmptyKVStore{}
	b := NewNonAtomicBatch(e)
	return NewBTreeCacheWrap(e, b, nil), b
}

// BTreeCacheWrap places a btree cache over a KVStore. All reads see the
// pending writes, the backing store is only modified on Write. This is the
// local transaction every state transition runs in.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a cache around kv. All writes are
// recorded in batch and reach the backing store only when the cache is
// written, which is why kv is read only.
//
// free may be nil. Pass the list of a parent cache to share nodes.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one. Writing it applies
// its changes to this cache only.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing to this cache.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write applies all changes to the backing store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all changes. The cache is empty afterwards.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if d, ok := b.batch.(discarder); ok {
		d.discard()
	}
}

// discarder is implemented by batches that can drop their pending ops.
type discarder interface {
	discard()
}

func (b *NonAtomicBatch) discard() {
	b.ops = nil
}

// Set writes to the BTree and to the batch
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{bkey{key}, value})
	return b.batch.Set(key, value)
}

// Delete deletes from the BTree and to the batch
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deletedItem{bkey{key}})
	return b.batch.Delete(key)
}

// Get reads from the cache if the key was written, else from the backing
// store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	item, ok, err := b.cached(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return b.back.Get(key)
	}
	if set, isSet := item.(setItem); isSet {
		return set.value, nil
	}
	return nil, nil
}

// Has reads from the cache if the key was written, else from the backing
// store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	item, ok, err := b.cached(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return b.back.Has(key)
	}
	_, isSet := item.(setItem)
	return isSet, nil
}

// cached returns the item written for key in this cache, if any.
func (b BTreeCacheWrap) cached(key []byte) (btree.Item, bool, error) {
	res := b.bt.Get(bkey{key})
	switch res.(type) {
	case nil:
		return nil, false, nil
	case setItem, deletedItem:
		return res, true, nil
	default:
		return nil, false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", res)
	}
}

// bkey orders the btree items by key. Every item embeds it.
type bkey struct {
	key []byte
}

func (k bkey) Key() []byte {
	return k.key
}

// Less panics if the item to compare is not a cache item.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(interface{ Key() []byte }).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

type setItem struct {
	bkey
	value []byte
}
