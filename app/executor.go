package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor runs transactions against a committed store.
//
// Transactions are serialized. Each one runs on its own cache-wrap of the
// working state: when any instruction fails the cache-wrap is discarded and
// the state is left untouched, otherwise all writes are applied together.
// Applied transactions are persisted by Commit.
type Executor struct {
	mu sync.Mutex

	store   custody.CommitKVStore
	handler custody.Handler
	logger  log.Logger
	metrics *Metrics
	debug   bool

	chainID string
	height  int64
}

// NewExecutor returns an executor that dispatches instructions to given
// handler, usually a Router. The chain id and height are loaded from the
// store.
func NewExecutor(store custody.CommitKVStore, handler custody.Handler) (*Executor, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	latest, err := store.LatestVersion()
	if err != nil {
		return nil, err
	}
	return &Executor{
		store:   store,
		handler: handler,
		logger:  log.NewNopLogger(),
		chainID: chainID,
		height:  latest.Version,
	}, nil
}

// WithLogger sets the logger on the Executor and returns it,
// to make it easy to chain in initialization
func (e *Executor) WithLogger(logger log.Logger) *Executor {
	e.logger = logger
	return e
}

// WithMetrics makes the executor report to m.
func (e *Executor) WithMetrics(m *Metrics) *Executor {
	e.metrics = m
	return e
}

// WithDebug makes transaction results carry full error details, including
// stack traces and internal errors.
func (e *Executor) WithDebug(debug bool) *Executor {
	e.debug = debug
	return e
}

// ChainID returns the chain id set at genesis, empty before InitChain.
func (e *Executor) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// InitChain stores the chain id and loads the genesis state. It can only
// be called once for a given store. The state is not committed.
func (e *Executor) InitChain(gen Genesis, init custody.Initializer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "state previously loaded for chain %s", e.chainID)
	}

	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.chainID = gen.ChainID
	e.logger.Info("Genesis loaded", "chain_id", gen.ChainID)
	return nil
}

// DeliverRawTx decodes a serialized transaction and delivers it.
func (e *Executor) DeliverRawTx(ctx context.Context, raw []byte) TxResult {
	var tx custody.Tx
	if err := tx.Unmarshal(raw); err != nil {
		res := txResult(err, e.debug)
		e.metrics.delivered(res)
		return res
	}
	return e.DeliverTx(ctx, &tx)
}

// DeliverTx verifies the signatures and runs all instructions of the
// transaction. Either all their writes are applied or none.
func (e *Executor) DeliverTx(ctx context.Context, tx *custody.Tx) TxResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res TxResult
	if err := e.deliver(ctx, tx); err != nil {
		e.logger.Debug("Transaction failed", "err", err)
		res = txResult(err, e.debug)
	}
	e.metrics.delivered(res)
	return res
}

func (e *Executor) deliver(ctx context.Context, tx *custody.Tx) (err error) {
	if e.chainID == "" {
		return errors.Wrap(errors.ErrUninitialized, "chain not initialized")
	}
	if len(tx.Instructions) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "no instructions")
	}

	ctx = custody.WithChainID(ctx, e.chainID)
	ctx = custody.WithHeight(ctx, e.height+1)
	ctx = custody.WithLogger(ctx, e.logger)
	ctx = custody.WithLogInfo(ctx, "call", "deliver_tx")

	ctx, err = sigs.Authenticated(ctx, tx)
	if err != nil {
		return err
	}

	cache := e.store.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	for i, ix := range tx.Instructions {
		if err := e.handler.Process(ctx, cache, ix); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Commit persists all delivered transactions and returns the new version
// and root hash of the state.
func (e *Executor) Commit() (custody.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.store.Commit()
	if err != nil {
		return id, err
	}
	e.height = id.Version
	e.metrics.committed(id.Version)
	e.logger.Info("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}
