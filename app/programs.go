package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/system"
	"github.com/iov-one/custody/x/token"
)

// Authenticator returns the authentication used by all programs: verified
// transaction signatures and derived signers.
func Authenticator() custody.Authenticator {
	return sigs.Authenticate{}
}

// Routes returns a router with all programs registered. The escrow program
// is registered under escrowProgramID.
func Routes(escrowProgramID custody.Address) *Router {
	auth := Authenticator()
	bucket := system.NewBucket()
	ledger := token.NewController(auth, bucket)

	r := NewRouter()
	system.RegisterRoutes(r, auth)
	token.RegisterRoutes(r, ledger)
	escrow.RegisterRoutes(r, escrowProgramID, auth, ledger)
	return r
}

// Initializers returns the genesis initializers of all programs.
func Initializers() custody.Initializer {
	return ChainInitializers(
		system.Initializer{},
		token.Initializer{},
		escrow.Initializer{},
	)
}

// Open returns an executor for a store that was initialized from genesis.
// The escrow program id is read from the state.
func Open(store custody.CommitKVStore) (*Executor, error) {
	conf, err := escrow.LoadConfiguration(store)
	if err != nil {
		return nil, errors.Wrap(err, "escrow configuration, was the state initialized?")
	}
	return NewExecutor(store, Routes(conf.ProgramID))
}
