package system

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RegisterRoutes will instantiate and register the system program handler.
func RegisterRoutes(r custody.Registry, auth custody.Authenticator) {
	r.Handle(ProgramID, NewHandler(auth, NewBucket()))
}

// Handler processes the system program instructions.
type Handler struct {
	auth    custody.Authenticator
	bucket  Bucket
	control Controller
}

var _ custody.Handler = Handler{}

// NewHandler returns the system program handler.
func NewHandler(auth custody.Authenticator, bucket Bucket) Handler {
	return Handler{
		auth:    auth,
		bucket:  bucket,
		control: NewController(bucket),
	}
}

// Process dispatches the instruction by its opcode.
func (h Handler) Process(ctx custody.Context, db custody.KVStore, ix custody.Instruction) error {
	if len(ix.Data) == 0 {
		return errors.Wrap(errors.ErrInvalidInstruction, "empty")
	}
	switch ix.Data[0] {
	case OpCreateAccount:
		msg, err := decodeCreateAccount(ix)
		if err != nil {
			return err
		}
		return h.createAccount(ctx, db, msg)
	case OpTransfer:
		msg, err := decodeTransfer(ix)
		if err != nil {
			return err
		}
		return h.transfer(ctx, db, msg)
	default:
		return errors.Wrapf(errors.ErrInvalidInstruction, "opcode %d", ix.Data[0])
	}
}

func (h Handler) createAccount(ctx custody.Context, db custody.KVStore, msg CreateAccount) error {
	custody.GetLogger(ctx).Debug("Instruction: CreateAccount", "account", msg.NewAccount, "owner", msg.Owner)

	if !h.auth.HasAddress(ctx, msg.Funder) {
		return errors.Wrapf(errors.ErrMissingSignature, "funder %s", msg.Funder)
	}
	if !h.auth.HasAddress(ctx, msg.NewAccount) {
		return errors.Wrapf(errors.ErrMissingSignature, "new account %s", msg.NewAccount)
	}
	existing, err := h.bucket.Get(db, msg.NewAccount)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "account %s in use", msg.NewAccount)
	}
	if err := h.control.Debit(db, msg.Funder, msg.Lamports); err != nil {
		return err
	}
	acc := &Account{
		Lamports: msg.Lamports,
		Owner:    msg.Owner,
		Data:     make([]byte, msg.Space),
	}
	return h.bucket.Save(db, msg.NewAccount, acc)
}

func (h Handler) transfer(ctx custody.Context, db custody.KVStore, msg Transfer) error {
	if !h.auth.HasAddress(ctx, msg.From) {
		return errors.Wrapf(errors.ErrMissingSignature, "source %s", msg.From)
	}
	from, err := h.bucket.Get(db, msg.From)
	if err != nil {
		return err
	}
	if from != nil && from.Owner != ProgramID {
		return errors.Wrapf(errors.ErrIncorrectProgram, "source %s is owned by %s", msg.From, from.Owner)
	}
	return h.control.Transfer(db, msg.From, msg.To, msg.Lamports)
}
