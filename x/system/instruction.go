package system

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Instruction opcodes of the system program.
const (
	OpCreateAccount uint8 = 0
	OpTransfer      uint8 = 2
)

// MaxAccountDataLength is the largest data an account may be created with.
const MaxAccountDataLength = 10 * 1024 * 1024

const (
	createAccountDataLen = 1 + 8 + 8 + custody.AddressLength
	transferDataLen      = 1 + 8
)

// CreateAccount funds a new account, allocates its data and assigns it to
// the owner program. Both the funding and the new account must sign.
type CreateAccount struct {
	Funder     custody.Address
	NewAccount custody.Address
	Lamports   uint64
	Space      uint64
	Owner      custody.Address
}

// Instruction builds the instruction.
func (c CreateAccount) Instruction() custody.Instruction {
	data := make([]byte, createAccountDataLen)
	data[0] = OpCreateAccount
	binary.LittleEndian.PutUint64(data[1:9], c.Lamports)
	binary.LittleEndian.PutUint64(data[9:17], c.Space)
	copy(data[17:], c.Owner[:])
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(c.Funder, true),
			custody.Writable(c.NewAccount, true),
		},
		Data: data,
	}
}

// Transfer moves lamports from a system owned account.
type Transfer struct {
	From     custody.Address
	To       custody.Address
	Lamports uint64
}

// Instruction builds the instruction.
func (t Transfer) Instruction() custody.Instruction {
	data := make([]byte, transferDataLen)
	data[0] = OpTransfer
	binary.LittleEndian.PutUint64(data[1:], t.Lamports)
	return custody.Instruction{
		ProgramID: ProgramID,
		Accounts: []custody.AccountMeta{
			custody.Writable(t.From, true),
			custody.Writable(t.To, false),
		},
		Data: data,
	}
}

func decodeCreateAccount(ix custody.Instruction) (CreateAccount, error) {
	if len(ix.Data) != createAccountDataLen {
		return CreateAccount{}, errors.Wrapf(errors.ErrInvalidInstruction, "create account data length %d", len(ix.Data))
	}
	if err := requireAccounts(ix, 2); err != nil {
		return CreateAccount{}, err
	}
	c := CreateAccount{
		Funder:     ix.Accounts[0].Address,
		NewAccount: ix.Accounts[1].Address,
		Lamports:   binary.LittleEndian.Uint64(ix.Data[1:9]),
		Space:      binary.LittleEndian.Uint64(ix.Data[9:17]),
	}
	copy(c.Owner[:], ix.Data[17:])
	if c.Space > MaxAccountDataLength {
		return CreateAccount{}, errors.Wrapf(errors.ErrInvalidInstruction, "space %d, max %d", c.Space, MaxAccountDataLength)
	}
	return c, nil
}

func decodeTransfer(ix custody.Instruction) (Transfer, error) {
	if len(ix.Data) != transferDataLen {
		return Transfer{}, errors.Wrapf(errors.ErrInvalidInstruction, "transfer data length %d", len(ix.Data))
	}
	if err := requireAccounts(ix, 2); err != nil {
		return Transfer{}, err
	}
	return Transfer{
		From:     ix.Accounts[0].Address,
		To:       ix.Accounts[1].Address,
		Lamports: binary.LittleEndian.Uint64(ix.Data[1:]),
	}, nil
}

func requireAccounts(ix custody.Instruction, n int) error {
	if len(ix.Accounts) < n {
		return errors.Wrapf(errors.ErrNotEnoughAccountKeys, "want %d, got %d", n, len(ix.Accounts))
	}
	if len(ix.Accounts) > n {
		return errors.Wrapf(errors.ErrInvalidInput, "want %d accounts, got %d", n, len(ix.Accounts))
	}
	return nil
}
