package custody

import (
	"encoding/json"
)

// Handler is a core engine that processes the instructions addressed to a
// single program. This could represent "token transfer", or "escrow
// exchange".
//
// Handlers must not attempt to undo their writes on failure. The executor
// runs them on a cache-wrapped store and discards it when an error is
// returned.
type Handler interface {
	Process(ctx Context, db KVStore, ix Instruction) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx Context, db KVStore, ix Instruction) error

// Process calls fn.
func (fn HandlerFunc) Process(ctx Context, db KVStore, ix Instruction) error {
	return fn(ctx, db, ix)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(program Address, h Handler)
}

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system.
type Authenticator interface {
	// HasAddress returns true if the address authorized the current
	// operation, either by a signature or by a derived address proof.
	HasAddress(ctx Context, addr Address) bool
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
