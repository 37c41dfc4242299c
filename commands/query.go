package commands

import (
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/system"
	"github.com/iov-one/custody/x/token"
)

// AccountView is an account as printed by the account command. Data of
// token accounts and escrow records is decoded.
type AccountView struct {
	Address  custody.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
	Owner    custody.Address `json:"owner"`
	Data     []byte          `json:"data,omitempty"`
	Token    *token.Account  `json:"token,omitempty"`
	Escrow   *escrow.Escrow  `json:"escrow,omitempty"`
}

// AccountCmd prints the committed state of the account given as the only
// argument.
func AccountCmd(home string, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: account <address>")
	}
	addr, err := custody.ParseAddress(args[0])
	if err != nil {
		return err
	}

	db, err := openStore(home)
	if err != nil {
		return err
	}
	defer db.Close()

	kv := db.CacheWrap()
	defer kv.Discard()
	acc, err := system.NewBucket().Get(kv, addr)
	if err != nil {
		return err
	}
	if acc == nil {
		return errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}

	view := AccountView{
		Address:  addr,
		Lamports: acc.Lamports,
		Owner:    acc.Owner,
		Data:     acc.Data,
	}
	switch acc.Owner {
	case token.ProgramID:
		var t token.Account
		if err := t.Unpack(acc.Data); err == nil {
			view.Token = &t
		}
	default:
		conf, err := escrow.LoadConfiguration(kv)
		if err == nil && acc.Owner == conf.ProgramID {
			var e escrow.Escrow
			if err := e.UnpackUnchecked(acc.Data); err == nil {
				view.Escrow = &e
			}
		}
	}
	return printJSON(out, view)
}

// AuthorityCmd prints the escrow authority derived for the program given
// as the only argument.
func AuthorityCmd(out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: authority <program>")
	}
	program, err := custody.ParseAddress(args[0])
	if err != nil {
		return err
	}
	authority, bump := escrow.Authority(program)
	return printJSON(out, struct {
		Program   custody.Address `json:"program"`
		Authority custody.Address `json:"authority"`
		Bump      uint8           `json:"bump"`
	}{program, authority, bump})
}
