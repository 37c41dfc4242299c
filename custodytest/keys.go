package custodytest

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"golang.org/x/crypto/ed25519"
)

// seed all test keys are derived from. Tests are deterministic, so a given
// index always yields the same key.
var seed = []byte("custodytest deterministic seed!!")

// Key returns the private key with given index.
func Key(t testing.TB, index uint32) ed25519.PrivateKey {
	t.Helper()
	k, err := crypto.DeriveKey(seed, crypto.KeyPath(index))
	if err != nil {
		t.Fatalf("cannot derive key %d: %s", index, err)
	}
	return k
}

// NewKey returns a random private key.
func NewKey() ed25519.PrivateKey {
	return crypto.GenPrivKey()
}

// NewAddress returns an address that is not controlled by any known key.
// Each call with a different n returns a different address.
func NewAddress(n uint64) custody.Address {
	var a custody.Address
	copy(a[:], "custodytest address")
	binary.BigEndian.PutUint64(a[24:], n)
	return a
}
