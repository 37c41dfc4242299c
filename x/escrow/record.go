package escrow

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RecordLen is the size of the packed escrow record.
const RecordLen = 1 + 3*custody.AddressLength + 8

// Escrow is the record of an active swap.
type Escrow struct {
	IsInitialized bool
	// Initializer created the escrow and receives the payment.
	Initializer custody.Address
	// HoldingAccount keeps the deposit until the exchange.
	HoldingAccount custody.Address
	// InitializerReceiveAccount is the token account paid by the taker.
	InitializerReceiveAccount custody.Address
	// ExpectedAmount is the amount the initializer wants in return.
	ExpectedAmount uint64
}

// Pack writes the record into dst, which must be exactly RecordLen bytes.
//   is_initialized (1) | initializer (32) | holding (32) | receive (32) | expected amount (8 LE)
func (e *Escrow) Pack(dst []byte) error {
	if len(dst) != RecordLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "escrow record length %d", len(dst))
	}
	dst[0] = 0
	if e.IsInitialized {
		dst[0] = 1
	}
	copy(dst[1:33], e.Initializer[:])
	copy(dst[33:65], e.HoldingAccount[:])
	copy(dst[65:97], e.InitializerReceiveAccount[:])
	binary.LittleEndian.PutUint64(dst[97:105], e.ExpectedAmount)
	return nil
}

// UnpackUnchecked loads the record without requiring it to be initialized.
func (e *Escrow) UnpackUnchecked(src []byte) error {
	if len(src) != RecordLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "escrow record length %d", len(src))
	}
	var rec Escrow
	switch src[0] {
	case 0:
	case 1:
		rec.IsInitialized = true
	default:
		return errors.Wrapf(errors.ErrInvalidAccountData, "escrow record flag %d", src[0])
	}
	copy(rec.Initializer[:], src[1:33])
	copy(rec.HoldingAccount[:], src[33:65])
	copy(rec.InitializerReceiveAccount[:], src[65:97])
	rec.ExpectedAmount = binary.LittleEndian.Uint64(src[97:105])
	*e = rec
	return nil
}

// Unpack loads an initialized record.
func (e *Escrow) Unpack(src []byte) error {
	var rec Escrow
	if err := rec.UnpackUnchecked(src); err != nil {
		return err
	}
	if !rec.IsInitialized {
		return errors.Wrap(errors.ErrUninitialized, "escrow record")
	}
	*e = rec
	return nil
}
