package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Op is the escrow instruction opcode.
type Op uint8

const (
	OpInitEscrow Op = 0
	OpExchange   Op = 1
)

func (o Op) String() string {
	switch o {
	case OpInitEscrow:
		return "InitEscrow"
	case OpExchange:
		return "Exchange"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

const payloadLen = 1 + 8

// PackPayload encodes the instruction data: the opcode followed by the
// amount as 8 bytes little endian.
func PackPayload(op Op, amount uint64) []byte {
	data := make([]byte, payloadLen)
	data[0] = byte(op)
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

// UnpackPayload decodes the instruction data.
func UnpackPayload(data []byte) (Op, uint64, error) {
	if len(data) != payloadLen {
		return 0, 0, errors.Wrapf(errors.ErrInvalidInstruction, "payload length %d, want %d", len(data), payloadLen)
	}
	op := Op(data[0])
	if op != OpInitEscrow && op != OpExchange {
		return 0, 0, errors.Wrapf(errors.ErrInvalidInstruction, "opcode %d", data[0])
	}
	return op, binary.LittleEndian.Uint64(data[1:]), nil
}

// InitEscrowAccounts are the accounts of the InitEscrow instruction, in
// their wire order.
type InitEscrowAccounts struct {
	// Initializer must sign.
	Initializer custody.Address
	// Holding holds the deposit. Its authority is handed over to the
	// escrow authority.
	Holding custody.Address
	// InitializerReceive is the token account the taker pays into.
	InitializerReceive custody.Address
	// Record is the storage of the escrow record.
	Record     custody.Address
	RentSysvar custody.Address
	Token      custody.Address
}

// Metas returns the account list of the instruction.
func (a InitEscrowAccounts) Metas() []custody.AccountMeta {
	return []custody.AccountMeta{
		custody.ReadOnly(a.Initializer, true),
		custody.Writable(a.Holding, false),
		custody.ReadOnly(a.InitializerReceive, false),
		custody.Writable(a.Record, false),
		custody.ReadOnly(a.RentSysvar, false),
		custody.ReadOnly(a.Token, false),
	}
}

func decodeInitEscrowAccounts(metas []custody.AccountMeta) (InitEscrowAccounts, error) {
	if err := arity(metas, 6); err != nil {
		return InitEscrowAccounts{}, err
	}
	if err := writable(metas, 1, 3); err != nil {
		return InitEscrowAccounts{}, err
	}
	return InitEscrowAccounts{
		Initializer:        metas[0].Address,
		Holding:            metas[1].Address,
		InitializerReceive: metas[2].Address,
		Record:             metas[3].Address,
		RentSysvar:         metas[4].Address,
		Token:              metas[5].Address,
	}, nil
}

// ExchangeAccounts are the accounts of the Exchange instruction, in their
// wire order.
type ExchangeAccounts struct {
	// Taker must sign.
	Taker custody.Address
	// TakerSend pays the expected amount.
	TakerSend custody.Address
	// TakerReceive receives the deposit.
	TakerReceive       custody.Address
	Holding            custody.Address
	Initializer        custody.Address
	InitializerReceive custody.Address
	Record             custody.Address
	Token              custody.Address
	// Authority is the derived escrow authority.
	Authority custody.Address
}

// Metas returns the account list of the instruction.
func (a ExchangeAccounts) Metas() []custody.AccountMeta {
	return []custody.AccountMeta{
		custody.ReadOnly(a.Taker, true),
		custody.Writable(a.TakerSend, false),
		custody.Writable(a.TakerReceive, false),
		custody.Writable(a.Holding, false),
		custody.Writable(a.Initializer, false),
		custody.Writable(a.InitializerReceive, false),
		custody.Writable(a.Record, false),
		custody.ReadOnly(a.Token, false),
		custody.ReadOnly(a.Authority, false),
	}
}

func decodeExchangeAccounts(metas []custody.AccountMeta) (ExchangeAccounts, error) {
	if err := arity(metas, 9); err != nil {
		return ExchangeAccounts{}, err
	}
	if err := writable(metas, 1, 2, 3, 4, 5, 6); err != nil {
		return ExchangeAccounts{}, err
	}
	return ExchangeAccounts{
		Taker:              metas[0].Address,
		TakerSend:          metas[1].Address,
		TakerReceive:       metas[2].Address,
		Holding:            metas[3].Address,
		Initializer:        metas[4].Address,
		InitializerReceive: metas[5].Address,
		Record:             metas[6].Address,
		Token:              metas[7].Address,
		Authority:          metas[8].Address,
	}, nil
}

// InitEscrowInstruction builds an instruction that opens an escrow
// expecting amount in return.
func InitEscrowInstruction(programID custody.Address, accounts InitEscrowAccounts, amount uint64) custody.Instruction {
	return custody.Instruction{
		ProgramID: programID,
		Accounts:  accounts.Metas(),
		Data:      PackPayload(OpInitEscrow, amount),
	}
}

// ExchangeInstruction builds an instruction that completes an escrow. The
// amount must equal the deposit the taker expects to receive.
func ExchangeInstruction(programID custody.Address, accounts ExchangeAccounts, amount uint64) custody.Instruction {
	return custody.Instruction{
		ProgramID: programID,
		Accounts:  accounts.Metas(),
		Data:      PackPayload(OpExchange, amount),
	}
}

func arity(metas []custody.AccountMeta, n int) error {
	if len(metas) < n {
		return errors.Wrapf(errors.ErrNotEnoughAccountKeys, "want %d, got %d", n, len(metas))
	}
	if len(metas) > n {
		return errors.Wrapf(errors.ErrInvalidInput, "want %d accounts, got %d", n, len(metas))
	}
	return nil
}

func writable(metas []custody.AccountMeta, positions ...int) error {
	for _, i := range positions {
		if !metas[i].IsWritable {
			return errors.Wrapf(errors.ErrInvalidInput, "account %d (%s) must be writable", i, metas[i].Address)
		}
	}
	return nil
}
