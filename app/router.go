package app

import (
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Router dispatches instructions to the handler registered for their
// program id.
type Router struct {
	routes map[custody.Address]custody.Handler
}

var _ custody.Registry = (*Router)(nil)
var _ custody.Handler = (*Router)(nil)

// NewRouter returns a router with no programs.
func NewRouter() *Router {
	return &Router{
		routes: make(map[custody.Address]custody.Handler),
	}
}

// Handle registers a handler for the program. It panics if the program is
// already registered.
func (r *Router) Handle(program custody.Address, h custody.Handler) {
	if _, ok := r.routes[program]; ok {
		panic(fmt.Sprintf("re-registering program %s", program))
	}
	r.routes[program] = h
}

// Handler returns the handler of the program or nil.
func (r *Router) Handler(program custody.Address) custody.Handler {
	return r.routes[program]
}

// Process runs the instruction with the handler of its program.
// ErrUnknownProgram is returned if there is none.
func (r *Router) Process(ctx custody.Context, db custody.KVStore, ix custody.Instruction) error {
	h, ok := r.routes[ix.ProgramID]
	if !ok {
		return errors.Wrapf(errors.ErrUnknownProgram, "program %s", ix.ProgramID)
	}
	return h.Process(ctx, db, ix)
}
