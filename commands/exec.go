package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

const (
	flagSeed = "seed"
	flagSign = "sign"
)

// ExecCmd delivers the JSON encoded transaction read from the file given
// as the only argument and commits the state when it succeeds.
//
// With -sign the transaction is signed before delivery by the keys of the
// listed indexes, derived from the -seed.
func ExecCmd(logger log.Logger, home string, debug bool, out io.Writer, args []string) error {
	var seedHex, sign string
	execFlags := flag.NewFlagSet("exec", flag.ContinueOnError)
	execFlags.StringVar(&seedHex, flagSeed, "", "hex encoded seed of the signing keys")
	execFlags.StringVar(&sign, flagSign, "", "comma separated indexes of the keys to sign with")
	if err := execFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if execFlags.NArg() != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: exec [flags] <tx.json>")
	}

	raw, err := ioutil.ReadFile(execFlags.Arg(0))
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var tx custody.Tx
	if err := json.Unmarshal(raw, &tx); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "transaction: %s", err)
	}
	keys, err := signingKeys(seedHex, sign)
	if err != nil {
		return err
	}

	db, err := openStore(home)
	if err != nil {
		return err
	}
	defer db.Close()

	exec, err := app.Open(db)
	if err != nil {
		return err
	}
	exec = exec.WithLogger(logger).WithDebug(debug)

	if len(keys) > 0 {
		if err := sigs.SignTx(&tx, exec.ChainID(), keys...); err != nil {
			return err
		}
	}

	res := exec.DeliverTx(context.Background(), &tx)
	if err := printJSON(out, res); err != nil {
		return err
	}
	if !res.IsOK() {
		return errors.Wrapf(errors.ErrInvalidInput, "transaction failed with code %d", res.Code)
	}
	id, err := exec.Commit()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "committed height %d hash %X\n", id.Version, id.Hash)
	return err
}

func signingKeys(seedHex, indexes string) ([]ed25519.PrivateKey, error) {
	if indexes == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "seed: %s", err)
	}
	var keys []ed25519.PrivateKey
	for _, s := range strings.Split(indexes, ",") {
		index, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "key index %q", s)
		}
		key, err := crypto.DeriveKey(seed, crypto.KeyPath(uint32(index)))
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func printJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
