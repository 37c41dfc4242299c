package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/system"
)

// Controller is the token ledger. Other extensions use it to inspect and
// move token balances.
type Controller struct {
	auth     custody.Authenticator
	accounts system.Bucket
	lamports system.Controller
}

// NewController returns a ledger that authorizes operations with given
// authenticator.
func NewController(auth custody.Authenticator, accounts system.Bucket) Controller {
	return Controller{
		auth:     auth,
		accounts: accounts,
		lamports: system.NewController(accounts),
	}
}

// Account returns the initialized token account stored under addr.
func (c Controller) Account(db custody.ReadOnlyKVStore, addr custody.Address) (*Account, error) {
	_, tok, err := c.load(db, addr)
	return tok, err
}

func (c Controller) load(db custody.ReadOnlyKVStore, addr custody.Address) (*system.Account, *Account, error) {
	acc, err := c.accounts.Get(db, addr)
	if err != nil {
		return nil, nil, err
	}
	if acc == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "token account %s", addr)
	}
	if acc.Owner != ProgramID {
		return nil, nil, errors.Wrapf(errors.ErrIncorrectProgram, "account %s is owned by %s", addr, acc.Owner)
	}
	var tok Account
	if err := tok.Unpack(acc.Data); err != nil {
		return nil, nil, errors.Wrapf(err, "account %s", addr)
	}
	return acc, &tok, nil
}

func (c Controller) save(db custody.KVStore, addr custody.Address, acc *system.Account, tok *Account) error {
	if err := tok.Pack(acc.Data); err != nil {
		return err
	}
	return c.accounts.Save(db, addr, acc)
}

// InitializeAccount binds a token owned account to a mint and an
// authority. The account must be owned by the token program, hold
// AccountLen bytes of data and not be initialized yet.
func (c Controller) InitializeAccount(db custody.KVStore, addr, mint, authority custody.Address) error {
	acc, err := c.accounts.Get(db, addr)
	if err != nil {
		return err
	}
	if acc == nil {
		return errors.Wrapf(errors.ErrNotFound, "token account %s", addr)
	}
	if acc.Owner != ProgramID {
		return errors.Wrapf(errors.ErrIncorrectProgram, "account %s is owned by %s", addr, acc.Owner)
	}
	if len(acc.Data) != AccountLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "account %s data length %d", addr, len(acc.Data))
	}
	if AccountState(acc.Data[AccountLen-1]) != Uninitialized {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "token account %s", addr)
	}
	tok := &Account{Mint: mint, Authority: authority, State: Initialized}
	return c.save(db, addr, acc, tok)
}

// MintTo increases the balance of the account. It is used to create the
// initial supply and does not require any authorization.
func (c Controller) MintTo(db custody.KVStore, addr custody.Address, amount uint64) error {
	acc, tok, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if tok.Amount, err = system.CheckedAdd(tok.Amount, amount); err != nil {
		return errors.Wrapf(err, "mint to %s", addr)
	}
	return c.save(db, addr, acc, tok)
}

// Transfer moves amount tokens between two accounts of the same mint. The
// authority must be the authority of the source account and must be
// authorized in the context.
func (c Controller) Transfer(ctx custody.Context, db custody.KVStore, from, to, authority custody.Address, amount uint64) error {
	srcAcc, src, err := c.load(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if err := c.authorize(ctx, from, src, authority); err != nil {
		return err
	}
	_, dest, err := c.load(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Mint != dest.Mint {
		return errors.Wrapf(errors.ErrInvalidAccountData, "mint mismatch: %s != %s", src.Mint, dest.Mint)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "account %s has %d, want %d", from, src.Amount, amount)
	}
	src.Amount -= amount
	if err := c.save(db, from, srcAcc, src); err != nil {
		return err
	}

	// Reload so that a transfer to self sees the debit.
	destAcc, dest, err := c.load(db, to)
	if err != nil {
		return err
	}
	if dest.Amount, err = system.CheckedAdd(dest.Amount, amount); err != nil {
		return errors.Wrapf(err, "credit %s", to)
	}
	return c.save(db, to, destAcc, dest)
}

// SetAuthority replaces the authority of the account. The current
// authority must be authorized in the context.
func (c Controller) SetAuthority(ctx custody.Context, db custody.KVStore, addr, newAuthority, current custody.Address) error {
	acc, tok, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, addr, tok, current); err != nil {
		return err
	}
	tok.Authority = newAuthority
	return c.save(db, addr, acc, tok)
}

// CloseAccount removes an account with no tokens left and credits all its
// lamports to refundTo.
func (c Controller) CloseAccount(ctx custody.Context, db custody.KVStore, addr, refundTo, authority custody.Address) error {
	acc, tok, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, addr, tok, authority); err != nil {
		return err
	}
	if tok.Amount != 0 {
		return errors.Wrapf(errors.ErrInvalidAccountData, "account %s still holds %d tokens", addr, tok.Amount)
	}
	if addr == refundTo {
		return errors.Wrap(errors.ErrInvalidInput, "cannot refund to the closed account")
	}
	if err := c.accounts.Delete(db, addr); err != nil {
		return err
	}
	return c.lamports.Credit(db, refundTo, acc.Lamports)
}

func (c Controller) authorize(ctx custody.Context, addr custody.Address, tok *Account, authority custody.Address) error {
	if tok.Authority != authority {
		return errors.Wrapf(errors.ErrInvalidAccountData, "%s is not the authority of %s", authority, addr)
	}
	if !c.auth.HasAddress(ctx, authority) {
		return errors.Wrapf(errors.ErrMissingSignature, "authority %s", authority)
	}
	return nil
}
