package commands

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const flagChainID = "chain-id"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (custody.Options, error)

// InitCmd writes the genesis file to home, unless one is already present,
// and loads it into a fresh state.
//
// Arguments left after the flags are passed to gen.
func InitCmd(gen GenOptions, initializer custody.Initializer, logger log.Logger, home string, args []string) error {
	var chainID string
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, "custody-local", "chain id of a new genesis file")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	genFile := GenesisPath(home)
	if fileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
	} else {
		state, err := gen(initFlags.Args())
		if err != nil {
			return err
		}
		if err := writeGenesis(genFile, app.Genesis{ChainID: chainID, AppState: state}); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	}

	genesis, err := app.LoadGenesis(genFile)
	if err != nil {
		return err
	}
	db, err := openStore(home)
	if err != nil {
		return err
	}
	defer db.Close()

	exec, err := app.NewExecutor(db, nil)
	if err != nil {
		return err
	}
	if err := exec.WithLogger(logger).InitChain(genesis, initializer); err != nil {
		return err
	}
	_, err = exec.Commit()
	return err
}

func writeGenesis(path string, gen app.Genesis) error {
	out, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(path, out, 0600); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
