package escrow

import (
	"github.com/iov-one/custody/errors"
)

// escrow takes 1010-1020
var (
	ErrAmountMismatch    = errors.Register(1010, "amount mismatch")
	ErrNotRentExempt     = errors.Register(1011, "not rent exempt")
	ErrAmountOverflow    = errors.Register(1012, "amount overflow")
	ErrWrongAssetProgram = errors.Register(1013, "wrong asset program")
)
