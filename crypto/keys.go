/*
Package crypto generates and derives the ed25519 keys that sign custody
transactions. Derivation follows SLIP-0010, so a single seed produces a
deterministic set of keys.
*/
package crypto

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// CoinType is the registered SLIP-0044 coin type used in derivation paths.
const CoinType = 501

// KeyPath returns the hardened derivation path of the key with given index.
func KeyPath(index uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'", CoinType, index)
}

// GenPrivKey returns a random new private key.
func GenPrivKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return priv
}

// DeriveKey derives the private key found under given path from the seed.
func DeriveKey(seed []byte, path string) (ed25519.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derive %q: %s", path, err)
	}
	pub, err := k.PublicKey()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "public key: %s", err)
	}
	priv := make([]byte, 0, ed25519.PrivateKeySize)
	priv = append(priv, k.Key...)
	priv = append(priv, pub...)
	return ed25519.PrivateKey(priv), nil
}

// Address returns the address controlled by the key.
func Address(priv ed25519.PrivateKey) custody.Address {
	return custody.PubKeyAddress(priv.Public().(ed25519.PublicKey))
}
