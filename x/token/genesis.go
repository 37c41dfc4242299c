package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/system"
)

const optKey = "token"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address   custody.Address `json:"address"`
	Mint      custody.Address `json:"mint"`
	Authority custody.Address `json:"authority"`
	Amount    uint64          `json:"amount"`
	Lamports  uint64          `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis creates the initial token accounts with their supply.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	bucket := system.NewBucket()
	// Genesis is not authorized by anyone, the setup calls below do not
	// need an authenticator.
	ctrl := NewController(nil, bucket)
	for _, a := range accts {
		if a.Address.IsZero() {
			return errors.Wrap(errors.ErrInvalidInput, "genesis token account without address")
		}
		if err := CreateAccount(db, bucket, a.Address, a.Lamports); err != nil {
			return errors.Wrapf(err, "genesis token account %s", a.Address)
		}
		if err := ctrl.InitializeAccount(db, a.Address, a.Mint, a.Authority); err != nil {
			return errors.Wrapf(err, "genesis token account %s", a.Address)
		}
		if err := ctrl.MintTo(db, a.Address, a.Amount); err != nil {
			return errors.Wrapf(err, "genesis token account %s", a.Address)
		}
	}
	return nil
}

// CreateAccount allocates an uninitialized token account holding given
// lamports. ErrAlreadyInitialized is returned if the address is in use.
func CreateAccount(db custody.KVStore, bucket system.Bucket, addr custody.Address, lamports uint64) error {
	existing, err := bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "account %s in use", addr)
	}
	acc := &system.Account{
		Lamports: lamports,
		Owner:    ProgramID,
		Data:     make([]byte, AccountLen),
	}
	return bucket.Save(db, addr, acc)
}
