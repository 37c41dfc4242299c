package custodytest

import (
	"github.com/iov-one/custody"
)

// Auth is a mock implementing custody.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
type Auth struct {
	Signers []custody.Address
}

var _ custody.Authenticator = (*Auth)(nil)

func (a *Auth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
