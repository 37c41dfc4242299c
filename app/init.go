package app

import (
	"crypto/sha256"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/system"
)

// DefaultEscrowProgramID is the program id the escrow program is deployed
// under by a default genesis.
var DefaultEscrowProgramID = custody.Address(sha256.Sum256([]byte("custody/escrow")))

// GenInitOptions returns a default genesis application state. Each
// argument is an address funded with the given lamports, as
// <address>:<lamports> or just <address> for the default amount.
func GenInitOptions(args []string) (custody.Options, error) {
	const defaultLamports = 1000000000

	var accounts []system.GenesisAccount
	for _, arg := range args {
		acc, err := parseGenesisAccount(arg, defaultLamports)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"rent":   system.DefaultRent(),
			"escrow": escrow.Configuration{ProgramID: DefaultEscrowProgramID},
		},
		"system": accounts,
		"token":  []interface{}{},
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var opts custody.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return opts, nil
}

func parseGenesisAccount(arg string, defaultLamports uint64) (system.GenesisAccount, error) {
	parts := strings.SplitN(arg, ":", 2)
	addr, err := custody.ParseAddress(parts[0])
	if err != nil {
		return system.GenesisAccount{}, errors.Wrapf(err, "account %q", arg)
	}
	lamports := defaultLamports
	if len(parts) == 2 {
		lamports, err = strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return system.GenesisAccount{}, errors.Wrapf(errors.ErrInvalidInput, "lamports of %q", arg)
		}
	}
	return system.GenesisAccount{Address: addr, Lamports: lamports}, nil
}
