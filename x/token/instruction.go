package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Instruction opcodes of the token program.
const (
	OpInitializeAccount uint8 = 1
	OpTransfer          uint8 = 3
	OpSetAuthority      uint8 = 6
	OpCloseAccount      uint8 = 9
)

// InitializeAccountIx binds a new token account to its mint and authority.
type InitializeAccountIx struct {
	Account   custody.Address
	Mint      custody.Address
	Authority custody.Address
}

// Instruction builds the instruction.
func (m InitializeAccountIx) Instruction() custody.Instruction {
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(m.Account, false),
			custody.ReadOnly(m.Mint, false),
			custody.ReadOnly(m.Authority, false),
		},
		Data: []byte{OpInitializeAccount},
	}
}

// TransferIx moves tokens between two accounts.
type TransferIx struct {
	Source      custody.Address
	Destination custody.Address
	Authority   custody.Address
	Amount      uint64
}

// Instruction builds the instruction.
func (m TransferIx) Instruction() custody.Instruction {
	data := make([]byte, 9)
	data[0] = OpTransfer
	binary.LittleEndian.PutUint64(data[1:], m.Amount)
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(m.Source, false),
			custody.Writable(m.Destination, false),
			custody.ReadOnly(m.Authority, true),
		},
		Data: data,
	}
}

// SetAuthorityIx hands an account over to a new authority.
type SetAuthorityIx struct {
	Account      custody.Address
	Authority    custody.Address
	NewAuthority custody.Address
}

// Instruction builds the instruction.
func (m SetAuthorityIx) Instruction() custody.Instruction {
	data := make([]byte, 1+custody.AddressLength)
	data[0] = OpSetAuthority
	copy(data[1:], m.NewAuthority[:])
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(m.Account, false),
			custody.ReadOnly(m.Authority, true),
		},
		Data: data,
	}
}

// CloseAccountIx removes an empty account.
type CloseAccountIx struct {
	Account     custody.Address
	Destination custody.Address
	Authority   custody.Address
}

// Instruction builds the instruction.
func (m CloseAccountIx) Instruction() custody.Instruction {
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(m.Account, false),
			custody.Writable(m.Destination, false),
			custody.ReadOnly(m.Authority, true),
		},
		Data: []byte{OpCloseAccount},
	}
}

func accounts(ix custody.Instruction, n int) ([]custody.Address, error) {
	if len(ix.Accounts) < n {
		return nil, errors.Wrapf(errors.ErrNotEnoughAccountKeys, "want %d, got %d", n, len(ix.Accounts))
	}
	if len(ix.Accounts) > n {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "want %d accounts, got %d", n, len(ix.Accounts))
	}
	addrs := make([]custody.Address, n)
	for i, a := range ix.Accounts {
		addrs[i] = a.Address
	}
	return addrs, nil
}

func dataLen(ix custody.Instruction, n int) error {
	if len(ix.Data) != n {
		return errors.Wrapf(errors.ErrInvalidInstruction, "opcode %d data length %d, want %d", ix.Data[0], len(ix.Data), n)
	}
	return nil
}
