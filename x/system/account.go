package system

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ProgramID owns all accounts that were not assigned to another program.
var ProgramID = custody.ZeroAddress

const accountHeaderLength = 8 + custody.AddressLength + 4

// Account is a native account.
type Account struct {
	Lamports uint64
	Owner    custody.Address
	Data     []byte
}

// NewAccount returns an account owned by the system program.
func NewAccount(lamports uint64) *Account {
	return &Account{Lamports: lamports, Owner: ProgramID}
}

// IsEmpty returns true if the account holds neither lamports nor data.
// Empty accounts are not persisted.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cp := *a
	if a.Data != nil {
		cp.Data = append([]byte(nil), a.Data...)
	}
	return &cp
}

// Marshal serializes the account as
//   lamports (8 LE) | owner (32) | data length (4 LE) | data
func (a *Account) Marshal() ([]byte, error) {
	raw := make([]byte, accountHeaderLength+len(a.Data))
	binary.LittleEndian.PutUint64(raw[0:8], a.Lamports)
	copy(raw[8:8+custody.AddressLength], a.Owner[:])
	binary.LittleEndian.PutUint32(raw[8+custody.AddressLength:accountHeaderLength], uint32(len(a.Data)))
	copy(raw[accountHeaderLength:], a.Data)
	return raw, nil
}

// Unmarshal loads the account from its binary form.
func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) < accountHeaderLength {
		return errors.Wrapf(errors.ErrInvalidAccountData, "account header too short: %d", len(raw))
	}
	size := binary.LittleEndian.Uint32(raw[8+custody.AddressLength : accountHeaderLength])
	if uint64(len(raw)-accountHeaderLength) != uint64(size) {
		return errors.Wrapf(errors.ErrInvalidAccountData, "want %d data bytes, got %d", size, len(raw)-accountHeaderLength)
	}
	a.Lamports = binary.LittleEndian.Uint64(raw[0:8])
	copy(a.Owner[:], raw[8:8+custody.AddressLength])
	a.Data = nil
	if size > 0 {
		a.Data = append([]byte(nil), raw[accountHeaderLength:]...)
	}
	return nil
}
