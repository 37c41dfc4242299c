package commands

import (
	"encoding/hex"
	"io"
	"strconv"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// KeysCmd derives the key with given index from a hex encoded seed and
// prints its path and address.
func KeysCmd(out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: keys <hex-seed> <index>")
	}
	seed, err := hex.DecodeString(args[0])
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "seed: %s", err)
	}
	index, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "index %q", args[1])
	}
	path := crypto.KeyPath(uint32(index))
	key, err := crypto.DeriveKey(seed, path)
	if err != nil {
		return err
	}
	return printJSON(out, struct {
		Path    string          `json:"path"`
		Address custody.Address `json:"address"`
	}{path, crypto.Address(key)})
}
