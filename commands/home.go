package commands

import (
	"os"
	"path/filepath"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
)

const (
	genesisFile = "genesis.json"
	dataDir     = "data"
	dbName      = "custody"
)

// GenesisPath returns the location of the genesis file in home.
func GenesisPath(home string) string {
	return filepath.Join(home, genesisFile)
}

// openStore loads the latest committed state kept in home.
func openStore(home string) (*iavl.CommitStore, error) {
	dir := filepath.Join(home, dataDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	db, err := iavl.NewCommitStore(dir, dbName)
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		return nil, err
	}
	return db, nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
