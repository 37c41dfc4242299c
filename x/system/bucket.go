package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const bucketPrefix = "acct:"

// Bucket stores accounts by address.
type Bucket struct{}

// NewBucket returns the account bucket.
func NewBucket() Bucket {
	return Bucket{}
}

func (Bucket) key(addr custody.Address) []byte {
	return append([]byte(bucketPrefix), addr[:]...)
}

// Get returns the account stored under given address, or nil if it does
// not exist.
func (b Bucket) Get(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	raw, err := db.Get(b.key(addr))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	var acc Account
	if err := acc.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

// GetOrEmpty returns the account stored under given address or a new empty
// system account.
func (b Bucket) GetOrEmpty(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	acc, err := b.Get(db, addr)
	if err != nil || acc != nil {
		return acc, err
	}
	return NewAccount(0), nil
}

// Save writes the account. Saving an empty account deletes it.
func (b Bucket) Save(db custody.KVStore, addr custody.Address, acc *Account) error {
	if acc.IsEmpty() {
		return b.Delete(db, addr)
	}
	raw, err := acc.Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.key(addr), raw)
}

// Delete removes the account.
func (b Bucket) Delete(db custody.KVStore, addr custody.Address) error {
	return db.Delete(b.key(addr))
}
