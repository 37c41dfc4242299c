package system

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	funder := custodytest.NewAddress(1)
	fresh := custodytest.NewAddress(2)
	owner := custodytest.NewAddress(3)

	cases := map[string]struct {
		signers  []custody.Address
		prepare  func(t *testing.T, db custody.KVStore)
		msg      CreateAccount
		wantErr  *errors.Error
		wantData int
	}{
		"success": {
			signers:  []custody.Address{funder, fresh},
			msg:      CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1000, Space: 105, Owner: owner},
			wantData: 105,
		},
		"new account must sign": {
			signers: []custody.Address{funder},
			msg:     CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1000, Space: 105, Owner: owner},
			wantErr: errors.ErrMissingSignature,
		},
		"funder must sign": {
			signers: []custody.Address{fresh},
			msg:     CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1000, Space: 105, Owner: owner},
			wantErr: errors.ErrMissingSignature,
		},
		"account in use": {
			signers: []custody.Address{funder, fresh},
			prepare: func(t *testing.T, db custody.KVStore) {
				require.NoError(t, NewBucket().Save(db, fresh, NewAccount(1)))
			},
			msg:     CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1000, Space: 105, Owner: owner},
			wantErr: errors.ErrAlreadyInitialized,
		},
		"insufficient funds": {
			signers: []custody.Address{funder, fresh},
			msg:     CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1000001, Space: 105, Owner: owner},
			wantErr: errors.ErrInsufficientAmount,
		},
		"too much space": {
			signers: []custody.Address{funder, fresh},
			msg:     CreateAccount{Funder: funder, NewAccount: fresh, Lamports: 1, Space: MaxAccountDataLength + 1, Owner: owner},
			wantErr: errors.ErrInvalidInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewBucket()
			require.NoError(t, NewController(bucket).Credit(db, funder, 1000000))
			if tc.prepare != nil {
				tc.prepare(t, db)
			}

			h := NewHandler(&custodytest.Auth{Signers: tc.signers}, bucket)
			err := h.Process(context.Background(), db, tc.msg.Instruction())
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			acc, err := bucket.Get(db, fresh)
			require.NoError(t, err)
			require.NotNil(t, acc)
			assert.Equal(t, owner, acc.Owner)
			assert.Equal(t, tc.msg.Lamports, acc.Lamports)
			assert.Len(t, acc.Data, tc.wantData)

			left, err := NewController(bucket).Balance(db, funder)
			require.NoError(t, err)
			assert.Equal(t, 1000000-tc.msg.Lamports, left)
		})
	}
}

func TestTransferInstruction(t *testing.T) {
	alice := custodytest.NewAddress(1)
	bob := custodytest.NewAddress(2)

	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)
	require.NoError(t, ctrl.Credit(db, alice, 100))

	h := NewHandler(&custodytest.Auth{Signers: []custody.Address{alice}}, bucket)
	ix := Transfer{From: alice, To: bob, Lamports: 40}.Instruction()
	require.NoError(t, h.Process(context.Background(), db, ix))

	a, _ := ctrl.Balance(db, alice)
	b, _ := ctrl.Balance(db, bob)
	assert.Equal(t, uint64(60), a)
	assert.Equal(t, uint64(40), b)

	// bob did not sign
	back := Transfer{From: bob, To: alice, Lamports: 1}.Instruction()
	err := h.Process(context.Background(), db, back)
	assert.True(t, errors.ErrMissingSignature.Is(err))

	// program owned accounts cannot be debited by the system program
	owned := &Account{Lamports: 10, Owner: custodytest.NewAddress(9), Data: []byte{1}}
	require.NoError(t, bucket.Save(db, alice, owned))
	err = h.Process(context.Background(), db, ix)
	assert.True(t, errors.ErrIncorrectProgram.Is(err))
}

func TestSystemInstructionDecoding(t *testing.T) {
	h := NewHandler(&custodytest.Auth{}, NewBucket())
	db := store.MemStore()

	err := h.Process(context.Background(), db, custody.Instruction{ProgramID: ProgramID})
	assert.True(t, errors.ErrInvalidInstruction.Is(err))

	err = h.Process(context.Background(), db, custody.Instruction{ProgramID: ProgramID, Data: []byte{7}})
	assert.True(t, errors.ErrInvalidInstruction.Is(err))

	ix := Transfer{From: custodytest.NewAddress(1), To: custodytest.NewAddress(2), Lamports: 1}.Instruction()
	ix.Accounts = ix.Accounts[:1]
	err = h.Process(context.Background(), db, ix)
	assert.True(t, errors.ErrNotEnoughAccountKeys.Is(err))
}
