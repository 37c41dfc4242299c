package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ProgramID is the address of the token program.
var ProgramID = custody.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// AccountLen is the size of the packed token account.
const AccountLen = 2*custody.AddressLength + 8 + 1

// AccountState is the lifecycle state of a token account.
type AccountState uint8

const (
	Uninitialized AccountState = 0
	Initialized   AccountState = 1
)

// Account is the token account data.
type Account struct {
	Mint      custody.Address
	Authority custody.Address
	Amount    uint64
	State     AccountState
}

// IsInitialized returns true if the account was initialized.
func (a *Account) IsInitialized() bool {
	return a.State == Initialized
}

// Pack serializes the account into dst, which must be exactly AccountLen
// bytes long.
//   mint (32) | authority (32) | amount (8 LE) | state (1)
func (a *Account) Pack(dst []byte) error {
	if len(dst) != AccountLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "token account length %d", len(dst))
	}
	copy(dst[0:32], a.Mint[:])
	copy(dst[32:64], a.Authority[:])
	binary.LittleEndian.PutUint64(dst[64:72], a.Amount)
	dst[72] = byte(a.State)
	return nil
}

// Unpack loads an initialized account.
func (a *Account) Unpack(src []byte) error {
	if len(src) != AccountLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "token account length %d", len(src))
	}
	var acc Account
	copy(acc.Mint[:], src[0:32])
	copy(acc.Authority[:], src[32:64])
	acc.Amount = binary.LittleEndian.Uint64(src[64:72])
	acc.State = AccountState(src[72])
	switch acc.State {
	case Uninitialized:
		return errors.Wrap(errors.ErrUninitialized, "token account")
	case Initialized:
	default:
		return errors.Wrapf(errors.ErrInvalidAccountData, "token account state %d", acc.State)
	}
	*a = acc
	return nil
}
