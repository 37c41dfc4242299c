package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/system"
	"github.com/iov-one/custody/x/token"
)

// TokenLedger is the token functionality the escrow settles with.
// Operations other than Account require the authority to be authorized in
// the context.
type TokenLedger interface {
	Account(db custody.ReadOnlyKVStore, addr custody.Address) (*token.Account, error)
	Transfer(ctx custody.Context, db custody.KVStore, from, to, authority custody.Address, amount uint64) error
	SetAuthority(ctx custody.Context, db custody.KVStore, addr, newAuthority, current custody.Address) error
	CloseAccount(ctx custody.Context, db custody.KVStore, addr, refundTo, authority custody.Address) error
}

// AccountStore gives access to the native accounts.
type AccountStore interface {
	Get(db custody.ReadOnlyKVStore, addr custody.Address) (*system.Account, error)
	Save(db custody.KVStore, addr custody.Address, acc *system.Account) error
	Delete(db custody.KVStore, addr custody.Address) error
}

var _ TokenLedger = token.Controller{}
var _ AccountStore = system.Bucket{}

// RegisterRoutes will instantiate and register the escrow program handler
// under given program id.
func RegisterRoutes(r custody.Registry, programID custody.Address, auth custody.Authenticator, ledger TokenLedger) {
	bucket := system.NewBucket()
	r.Handle(programID, NewHandler(programID, auth, ledger, bucket, system.NewController(bucket)))
}

// Handler processes the escrow instructions.
type Handler struct {
	programID custody.Address
	auth      custody.Authenticator
	ledger    TokenLedger
	accounts  AccountStore
	lamports  system.Controller
}

var _ custody.Handler = Handler{}

// NewHandler returns the escrow program handler. The program id is used
// to derive the escrow authority and must be the id the handler is
// registered under.
func NewHandler(programID custody.Address, auth custody.Authenticator, ledger TokenLedger, accounts AccountStore, lamports system.Controller) Handler {
	return Handler{
		programID: programID,
		auth:      auth,
		ledger:    ledger,
		accounts:  accounts,
		lamports:  lamports,
	}
}

// Process decodes the instruction and runs it.
func (h Handler) Process(ctx custody.Context, db custody.KVStore, ix custody.Instruction) error {
	op, amount, err := UnpackPayload(ix.Data)
	if err != nil {
		return err
	}
	custody.GetLogger(ctx).Info("Instruction: "+op.String(), "program", h.programID)

	switch op {
	case OpInitEscrow:
		accounts, err := decodeInitEscrowAccounts(ix.Accounts)
		if err != nil {
			return err
		}
		return h.initEscrow(ctx, db, accounts, amount)
	case OpExchange:
		accounts, err := decodeExchangeAccounts(ix.Accounts)
		if err != nil {
			return err
		}
		return h.exchange(ctx, db, accounts, amount)
	}
	return errors.Wrapf(errors.ErrInvalidInstruction, "opcode %d", op)
}

func (h Handler) initEscrow(ctx custody.Context, db custody.KVStore, accts InitEscrowAccounts, expectedAmount uint64) error {
	if !h.auth.HasAddress(ctx, accts.Initializer) {
		return errors.Wrapf(errors.ErrMissingSignature, "initializer %s", accts.Initializer)
	}

	receive, err := h.accounts.Get(db, accts.InitializerReceive)
	if err != nil {
		return err
	}
	if receive == nil || receive.Owner != token.ProgramID {
		return errors.Wrapf(ErrWrongAssetProgram, "receive account %s", accts.InitializerReceive)
	}
	if accts.Token != token.ProgramID {
		return errors.Wrapf(errors.ErrInvalidInput, "%s is not the token program", accts.Token)
	}

	rent, err := system.LoadRent(db, accts.RentSysvar)
	if err != nil {
		return err
	}
	recordAcc, err := h.accounts.Get(db, accts.Record)
	if err != nil {
		return err
	}
	if recordAcc == nil {
		recordAcc = system.NewAccount(0)
	}
	if !rent.IsExempt(recordAcc.Lamports, len(recordAcc.Data)) {
		return errors.Wrapf(ErrNotRentExempt, "record %s has %d lamports, want %d",
			accts.Record, recordAcc.Lamports, rent.MinimumBalance(len(recordAcc.Data)))
	}
	if recordAcc.Owner != h.programID {
		return errors.Wrapf(errors.ErrIncorrectProgram, "record %s is owned by %s", accts.Record, recordAcc.Owner)
	}

	var record Escrow
	if err := record.UnpackUnchecked(recordAcc.Data); err != nil {
		return errors.Wrapf(err, "record %s", accts.Record)
	}
	if record.IsInitialized {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "record %s", accts.Record)
	}

	record = Escrow{
		IsInitialized:             true,
		Initializer:               accts.Initializer,
		HoldingAccount:            accts.Holding,
		InitializerReceiveAccount: accts.InitializerReceive,
		ExpectedAmount:            expectedAmount,
	}
	if err := record.Pack(recordAcc.Data); err != nil {
		return err
	}
	if err := h.accounts.Save(db, accts.Record, recordAcc); err != nil {
		return err
	}

	authority, _ := Authority(h.programID)
	custody.GetLogger(ctx).Debug("Transferring holding account to the escrow authority",
		"holding", accts.Holding, "authority", authority)
	if err := h.ledger.SetAuthority(ctx, db, accts.Holding, authority, accts.Initializer); err != nil {
		return errors.Wrap(err, "set holding authority")
	}
	return nil
}

func (h Handler) exchange(ctx custody.Context, db custody.KVStore, accts ExchangeAccounts, amount uint64) error {
	log := custody.GetLogger(ctx)

	if !h.auth.HasAddress(ctx, accts.Taker) {
		return errors.Wrapf(errors.ErrMissingSignature, "taker %s", accts.Taker)
	}
	if accts.Token != token.ProgramID {
		return errors.Wrapf(errors.ErrInvalidInput, "%s is not the token program", accts.Token)
	}

	recordAcc, record, err := h.loadRecord(db, accts.Record)
	if err != nil {
		return err
	}

	holding, err := h.ledger.Account(db, accts.Holding)
	if err != nil {
		return errors.Wrap(err, "holding account")
	}
	if holding.Amount != amount {
		return errors.Wrapf(ErrAmountMismatch, "holding account has %d, taker expects %d", holding.Amount, amount)
	}

	if record.HoldingAccount != accts.Holding {
		return errors.Wrapf(errors.ErrInvalidAccountData, "holding account %s", accts.Holding)
	}
	if record.Initializer != accts.Initializer {
		return errors.Wrapf(errors.ErrInvalidAccountData, "initializer %s", accts.Initializer)
	}
	if record.InitializerReceiveAccount != accts.InitializerReceive {
		return errors.Wrapf(errors.ErrInvalidAccountData, "initializer receive account %s", accts.InitializerReceive)
	}
	authority, bump := Authority(h.programID)
	if authority != accts.Authority {
		return errors.Wrapf(errors.ErrInvalidAccountData, "authority %s", accts.Authority)
	}

	log.Debug("Paying the initializer", "amount", record.ExpectedAmount)
	if err := h.ledger.Transfer(ctx, db, accts.TakerSend, accts.InitializerReceive, accts.Taker, record.ExpectedAmount); err != nil {
		return errors.Wrap(err, "pay initializer")
	}

	authorized, err := sigs.WithDerivedSigner(ctx, h.programID, authoritySeeds(), bump)
	if err != nil {
		return err
	}
	log.Debug("Releasing the deposit to the taker", "amount", holding.Amount)
	if err := h.ledger.Transfer(authorized, db, accts.Holding, accts.TakerReceive, authority, holding.Amount); err != nil {
		return errors.Wrap(err, "release deposit")
	}
	log.Debug("Closing the holding account")
	if err := h.ledger.CloseAccount(authorized, db, accts.Holding, accts.Initializer, authority); err != nil {
		return errors.Wrap(err, "close holding account")
	}

	log.Debug("Closing the escrow record")
	if err := h.lamports.Credit(db, accts.Initializer, recordAcc.Lamports); err != nil {
		if errors.ErrOverflow.Is(err) {
			return errors.Wrap(ErrAmountOverflow, err.Error())
		}
		return err
	}
	return h.accounts.Delete(db, accts.Record)
}

// loadRecord returns the record account and the initialized record stored
// in it. A missing account is an uninitialized record.
func (h Handler) loadRecord(db custody.ReadOnlyKVStore, addr custody.Address) (*system.Account, *Escrow, error) {
	acc, err := h.accounts.Get(db, addr)
	if err != nil {
		return nil, nil, err
	}
	if acc == nil {
		return nil, nil, errors.Wrapf(errors.ErrUninitialized, "record %s", addr)
	}
	if acc.Owner != h.programID {
		return nil, nil, errors.Wrapf(errors.ErrIncorrectProgram, "record %s is owned by %s", addr, acc.Owner)
	}
	var record Escrow
	if err := record.Unpack(acc.Data); err != nil {
		return nil, nil, errors.Wrapf(err, "record %s", addr)
	}
	return acc, &record, nil
}
