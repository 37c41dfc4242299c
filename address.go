package custody

import (
	"bytes"
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// AddressLength is the length of all addresses. An ed25519 public key is a
// valid address as is.
const AddressLength = 32

// Address identifies an account. It is either an ed25519 public key or an
// address derived from a program address (see CreateDerivedAddress) that no
// private key exists for.
type Address [AddressLength]byte

// ZeroAddress is the address of no account.
var ZeroAddress Address

// NewAddress copies given bytes into an address. It fails if the length
// does not match.
func NewAddress(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, errors.ErrInvalidInput.Newf("address length %d", len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// PubKeyAddress returns the address of an ed25519 public key.
func PubKeyAddress(pub ed25519.PublicKey) Address {
	var a Address
	copy(a[:], pub)
	return a
}

// ParseAddress decodes the base58 representation of an address.
func ParseAddress(s string) (Address, error) {
	raw := base58.Decode(s)
	if len(raw) == 0 && len(s) != 0 {
		return ZeroAddress, errors.ErrInvalidInput.Newf("malformed address %q", s)
	}
	return NewAddress(raw)
}

// MustParseAddress is ParseAddress that panics on failure. Use it only for
// well-known program and sysvar addresses.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// IsZero returns true if this is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns a copy of the address as a slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// String returns the base58 representation.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalJSON encodes the address as a base58 string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*a = ZeroAddress
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
