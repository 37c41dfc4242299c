package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RegisterRoutes will instantiate and register the token program handler.
func RegisterRoutes(r custody.Registry, control Controller) {
	r.Handle(ProgramID, NewHandler(control))
}

// Handler processes the token program instructions.
type Handler struct {
	control Controller
}

var _ custody.Handler = Handler{}

// NewHandler returns the token program handler.
func NewHandler(control Controller) Handler {
	return Handler{control: control}
}

// Process dispatches the instruction by its opcode.
func (h Handler) Process(ctx custody.Context, db custody.KVStore, ix custody.Instruction) error {
	if len(ix.Data) == 0 {
		return errors.Wrap(errors.ErrInvalidInstruction, "empty")
	}
	log := custody.GetLogger(ctx)

	switch op := ix.Data[0]; op {
	case OpInitializeAccount:
		if err := dataLen(ix, 1); err != nil {
			return err
		}
		acc, err := accounts(ix, 3)
		if err != nil {
			return err
		}
		log.Debug("Instruction: InitializeAccount", "account", acc[0])
		return h.control.InitializeAccount(db, acc[0], acc[1], acc[2])

	case OpTransfer:
		if err := dataLen(ix, 9); err != nil {
			return err
		}
		acc, err := accounts(ix, 3)
		if err != nil {
			return err
		}
		amount := binary.LittleEndian.Uint64(ix.Data[1:])
		log.Debug("Instruction: Transfer", "from", acc[0], "to", acc[1], "amount", amount)
		return h.control.Transfer(ctx, db, acc[0], acc[1], acc[2], amount)

	case OpSetAuthority:
		if err := dataLen(ix, 1+custody.AddressLength); err != nil {
			return err
		}
		acc, err := accounts(ix, 2)
		if err != nil {
			return err
		}
		newAuthority, err := custody.NewAddress(ix.Data[1:])
		if err != nil {
			return err
		}
		log.Debug("Instruction: SetAuthority", "account", acc[0], "authority", newAuthority)
		return h.control.SetAuthority(ctx, db, acc[0], newAuthority, acc[1])

	case OpCloseAccount:
		if err := dataLen(ix, 1); err != nil {
			return err
		}
		acc, err := accounts(ix, 3)
		if err != nil {
			return err
		}
		log.Debug("Instruction: CloseAccount", "account", acc[0], "destination", acc[1])
		return h.control.CloseAccount(ctx, db, acc[0], acc[1], acc[2])

	default:
		return errors.Wrapf(errors.ErrInvalidInstruction, "opcode %d", op)
	}
}
