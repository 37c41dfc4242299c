package system

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Controller is the functionality needed by other extensions to manipulate
// native accounts.
type Controller interface {
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)
	Credit(db custody.KVStore, addr custody.Address, lamports uint64) error
	Debit(db custody.KVStore, addr custody.Address, lamports uint64) error
	Transfer(db custody.KVStore, src, dest custody.Address, lamports uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller that uses given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the lamports held by the account, zero if it does not
// exist.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	acc, err := c.bucket.Get(db, addr)
	if err != nil || acc == nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// Credit adds lamports to the account, creating it if needed. ErrOverflow
// is returned if the balance would exceed the maximum value and nothing is
// written in that case.
func (c BaseController) Credit(db custody.KVStore, addr custody.Address, lamports uint64) error {
	acc, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return err
	}
	sum, err := CheckedAdd(acc.Lamports, lamports)
	if err != nil {
		return errors.Wrapf(err, "credit %s", addr)
	}
	acc.Lamports = sum
	return c.bucket.Save(db, addr, acc)
}

// Debit removes lamports from the account.
func (c BaseController) Debit(db custody.KVStore, addr custody.Address, lamports uint64) error {
	acc, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if acc == nil {
		return errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	if acc.Lamports < lamports {
		return errors.Wrapf(errors.ErrInsufficientAmount, "account %s has %d, want %d", addr, acc.Lamports, lamports)
	}
	acc.Lamports -= lamports
	return c.bucket.Save(db, addr, acc)
}

// Transfer moves lamports between two accounts.
func (c BaseController) Transfer(db custody.KVStore, src, dest custody.Address, lamports uint64) error {
	if err := c.Debit(db, src, lamports); err != nil {
		return err
	}
	return c.Credit(db, dest, lamports)
}

// CheckedAdd returns a + b or ErrOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}
