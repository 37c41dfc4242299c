package token

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mintA = custodytest.NewAddress(100)
	mintB = custodytest.NewAddress(101)
)

// newTokenAccount creates and funds an initialized token account.
func newTokenAccount(t testing.TB, db custody.KVStore, addr, mint, authority custody.Address, amount, lamports uint64) {
	t.Helper()
	bucket := system.NewBucket()
	ctrl := NewController(nil, bucket)
	require.NoError(t, CreateAccount(db, bucket, addr, lamports))
	require.NoError(t, ctrl.InitializeAccount(db, addr, mint, authority))
	require.NoError(t, ctrl.MintTo(db, addr, amount))
}

func TestTransfer(t *testing.T) {
	alice := custodytest.NewAddress(1)
	bob := custodytest.NewAddress(2)
	src := custodytest.NewAddress(10)
	dst := custodytest.NewAddress(11)
	other := custodytest.NewAddress(12)

	cases := map[string]struct {
		signer    custody.Address
		to        custody.Address
		authority custody.Address
		amount    uint64
		wantErr   *errors.Error
		wantSrc   uint64
		wantDst   uint64
	}{
		"success": {
			signer: alice, to: dst, authority: alice, amount: 30,
			wantSrc: 70, wantDst: 30,
		},
		"whole balance": {
			signer: alice, to: dst, authority: alice, amount: 100,
			wantSrc: 0, wantDst: 100,
		},
		"to self": {
			signer: alice, to: src, authority: alice, amount: 40,
			wantSrc: 100, wantDst: 0,
		},
		"insufficient": {
			signer: alice, to: dst, authority: alice, amount: 101,
			wantErr: errors.ErrInsufficientAmount,
		},
		"not signed": {
			signer: bob, to: dst, authority: alice, amount: 1,
			wantErr: errors.ErrMissingSignature,
		},
		"wrong authority": {
			signer: bob, to: dst, authority: bob, amount: 1,
			wantErr: errors.ErrInvalidAccountData,
		},
		"mint mismatch": {
			signer: alice, to: other, authority: alice, amount: 1,
			wantErr: errors.ErrInvalidAccountData,
		},
		"missing destination": {
			signer: alice, to: custodytest.NewAddress(99), authority: alice, amount: 1,
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			newTokenAccount(t, db, src, mintA, alice, 100, 2000)
			newTokenAccount(t, db, dst, mintA, bob, 0, 2000)
			newTokenAccount(t, db, other, mintB, bob, 0, 2000)

			auth := &custodytest.Auth{Signers: []custody.Address{tc.signer}}
			ctrl := NewController(auth, system.NewBucket())
			err := ctrl.Transfer(context.Background(), db, src, tc.to, tc.authority, tc.amount)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			s, err := ctrl.Account(db, src)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSrc, s.Amount)
			d, err := ctrl.Account(db, dst)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDst, d.Amount)
		})
	}
}

func TestTransferOverflow(t *testing.T) {
	alice := custodytest.NewAddress(1)
	src := custodytest.NewAddress(10)
	dst := custodytest.NewAddress(11)

	db := store.MemStore()
	newTokenAccount(t, db, src, mintA, alice, 10, 2000)
	newTokenAccount(t, db, dst, mintA, alice, math.MaxUint64, 2000)

	ctrl := NewController(&custodytest.Auth{Signers: []custody.Address{alice}}, system.NewBucket())
	err := ctrl.Transfer(context.Background(), db, src, dst, alice, 1)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestSetAuthority(t *testing.T) {
	alice := custodytest.NewAddress(1)
	bob := custodytest.NewAddress(2)
	addr := custodytest.NewAddress(10)

	db := store.MemStore()
	newTokenAccount(t, db, addr, mintA, alice, 5, 2000)

	ctrl := NewController(&custodytest.Auth{Signers: []custody.Address{alice}}, system.NewBucket())
	require.NoError(t, ctrl.SetAuthority(context.Background(), db, addr, bob, alice))

	acc, err := ctrl.Account(db, addr)
	require.NoError(t, err)
	assert.Equal(t, bob, acc.Authority)
	assert.Equal(t, uint64(5), acc.Amount)

	// alice no longer controls the account
	err = ctrl.SetAuthority(context.Background(), db, addr, alice, alice)
	assert.True(t, errors.ErrInvalidAccountData.Is(err))
	err = ctrl.Transfer(context.Background(), db, addr, addr, alice, 1)
	assert.True(t, errors.ErrInvalidAccountData.Is(err))
}

func TestCloseAccount(t *testing.T) {
	alice := custodytest.NewAddress(1)
	refund := custodytest.NewAddress(2)
	empty := custodytest.NewAddress(10)
	full := custodytest.NewAddress(11)

	db := store.MemStore()
	newTokenAccount(t, db, empty, mintA, alice, 0, 2039280)
	newTokenAccount(t, db, full, mintA, alice, 1, 2000)

	bucket := system.NewBucket()
	lamports := system.NewController(bucket)
	require.NoError(t, lamports.Credit(db, refund, 1000))

	ctrl := NewController(&custodytest.Auth{Signers: []custody.Address{alice}}, bucket)

	err := ctrl.CloseAccount(context.Background(), db, full, refund, alice)
	assert.True(t, errors.ErrInvalidAccountData.Is(err))

	err = ctrl.CloseAccount(context.Background(), db, empty, empty, alice)
	assert.True(t, errors.ErrInvalidInput.Is(err))

	require.NoError(t, ctrl.CloseAccount(context.Background(), db, empty, refund, alice))
	bal, err := lamports.Balance(db, refund)
	require.NoError(t, err)
	assert.Equal(t, uint64(2040280), bal)

	acc, err := bucket.Get(db, empty)
	require.NoError(t, err)
	assert.Nil(t, acc)

	_, err = ctrl.Account(db, empty)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCloseAccountOverflow(t *testing.T) {
	alice := custodytest.NewAddress(1)
	refund := custodytest.NewAddress(2)
	addr := custodytest.NewAddress(10)

	db := store.MemStore()
	newTokenAccount(t, db, addr, mintA, alice, 0, 10)
	bucket := system.NewBucket()
	require.NoError(t, system.NewController(bucket).Credit(db, refund, math.MaxUint64))

	ctrl := NewController(&custodytest.Auth{Signers: []custody.Address{alice}}, bucket)
	err := ctrl.CloseAccount(context.Background(), db, addr, refund, alice)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestInitializeAccount(t *testing.T) {
	alice := custodytest.NewAddress(1)
	addr := custodytest.NewAddress(10)
	bucket := system.NewBucket()
	ctrl := NewController(nil, bucket)

	db := store.MemStore()
	err := ctrl.InitializeAccount(db, addr, mintA, alice)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, bucket.Save(db, addr, &system.Account{Lamports: 1, Data: make([]byte, AccountLen)}))
	err = ctrl.InitializeAccount(db, addr, mintA, alice)
	assert.True(t, errors.ErrIncorrectProgram.Is(err))

	require.NoError(t, bucket.Delete(db, addr))
	require.NoError(t, CreateAccount(db, bucket, addr, 1))
	require.NoError(t, ctrl.InitializeAccount(db, addr, mintA, alice))
	err = ctrl.InitializeAccount(db, addr, mintA, alice)
	assert.True(t, errors.ErrAlreadyInitialized.Is(err))

	err = CreateAccount(db, bucket, addr, 1)
	assert.True(t, errors.ErrAlreadyInitialized.Is(err))
}
