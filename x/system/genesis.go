package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "system"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address  custody.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
	Owner    custody.Address `json:"owner"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the rent configuration and the initial accounts.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	rent := DefaultRent()
	if err := gconf.InitConfig(db, opts, rentConfKey, &rent); err != nil {
		if !errors.ErrNotFound.Is(err) {
			return err
		}
		if err := SaveRent(db, DefaultRent()); err != nil {
			return err
		}
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	bucket := NewBucket()
	for _, a := range accts {
		if a.Address.IsZero() {
			return errors.Wrap(errors.ErrInvalidInput, "genesis account without address")
		}
		acc := &Account{Lamports: a.Lamports, Owner: a.Owner}
		if err := bucket.Save(db, a.Address, acc); err != nil {
			return errors.Wrapf(err, "genesis account %s", a.Address)
		}
	}
	return nil
}
