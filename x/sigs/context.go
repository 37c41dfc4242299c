package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
	contextKeyDerived
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx custody.Context, signers []custody.Address) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// WithDerivedSigner returns a context in which the program acts for the
// address derived from its id, given seeds and the bump. ErrInvalidInput is
// returned if they do not produce a valid derived address.
//
// Only the program that owns program id may call this; the handler passes
// its own id.
func WithDerivedSigner(ctx custody.Context, program custody.Address, seeds [][]byte, bump uint8) (custody.Context, error) {
	withBump := make([][]byte, 0, len(seeds)+1)
	withBump = append(withBump, seeds...)
	withBump = append(withBump, []byte{bump})
	addr, err := custody.CreateDerivedAddress(withBump, program)
	if err != nil {
		return nil, errors.Wrap(err, "derived signer")
	}

	prev := derivedSigners(ctx)
	derived := make([]custody.Address, 0, len(prev)+1)
	derived = append(derived, prev...)
	derived = append(derived, addr)
	return context.WithValue(ctx, contextKeyDerived, derived), nil
}

func derivedSigners(ctx custody.Context) []custody.Address {
	val, _ := ctx.Value(contextKeyDerived).([]custody.Address)
	return val
}

// Authenticate implements custody.Authenticator over the verified
// signatures and the derived signers.
type Authenticate struct{}

var _ custody.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx custody.Context) []custody.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]custody.Address)
	return val
}

// HasAddress returns true if the address signed the transaction or is a
// derived signer of the current context.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	for _, s := range derivedSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
