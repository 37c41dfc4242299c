package app

import (
	"github.com/iov-one/custody/errors"
)

// TxResult is the outcome of a transaction. A zero code is a success, any
// other code is the code of the registered error that aborted it.
type TxResult struct {
	Code uint32 `json:"code"`
	Log  string `json:"log,omitempty"`
}

// IsOK returns true if the transaction succeeded.
func (r TxResult) IsOK() bool {
	return r.Code == errors.SuccessCode
}

// txResult converts an error into a result. Internal error details are
// only kept in debug mode.
func txResult(err error, debug bool) TxResult {
	code, log := errors.Info(errors.Redact(err, debug), debug)
	return TxResult{Code: code, Log: log}
}
