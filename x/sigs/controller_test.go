package sigs

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	bz2 := []byte("blast")

	chainID := "test-sign-bytes"
	c1, err := BuildSignBytes(bz, chainID)
	require.NoError(t, err)
	assert.Len(t, c1, 64)

	// make sure sign bytes change on tx and chain_id
	ct, err := BuildSignBytes(bz2, chainID)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2")
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)

	_, err = BuildSignBytes(bz, "bad chain!")
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "verify-sigs-chain"

	alice := custodytest.Key(t, 0)
	bob := custodytest.Key(t, 1)
	aliceAddr := crypto.Address(alice)
	bobAddr := crypto.Address(bob)

	newTx := func() *custody.Tx {
		return &custody.Tx{
			Instructions: []custody.Instruction{
				{
					ProgramID: custodytest.NewAddress(1),
					Accounts: []custody.AccountMeta{
						custody.Writable(aliceAddr, true),
						custody.ReadOnly(bobAddr, true),
						custody.Writable(custodytest.NewAddress(2), false),
					},
					Data: []byte{1, 2, 3},
				},
			},
		}
	}

	cases := map[string]struct {
		sign    func(*custody.Tx)
		wantErr *errors.Error
	}{
		"all signed": {
			sign: func(tx *custody.Tx) {
				require.NoError(t, SignTx(tx, chainID, alice, bob))
			},
		},
		"missing one signer": {
			sign: func(tx *custody.Tx) {
				require.NoError(t, SignTx(tx, chainID, alice))
			},
			wantErr: errors.ErrMissingSignature,
		},
		"no signatures": {
			sign:    func(tx *custody.Tx) {},
			wantErr: errors.ErrMissingSignature,
		},
		"signed for another chain": {
			sign: func(tx *custody.Tx) {
				require.NoError(t, SignTx(tx, "another-chain", alice, bob))
			},
			wantErr: errors.ErrMissingSignature,
		},
		"modified after signing": {
			sign: func(tx *custody.Tx) {
				require.NoError(t, SignTx(tx, chainID, alice, bob))
				tx.Instructions[0].Data = []byte{1, 2, 4}
			},
			wantErr: errors.ErrMissingSignature,
		},
		"truncated signature": {
			sign: func(tx *custody.Tx) {
				require.NoError(t, SignTx(tx, chainID, alice, bob))
				tx.Signatures[1].Signature = tx.Signatures[1].Signature[:10]
			},
			wantErr: errors.ErrMissingSignature,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx := newTx()
			tc.sign(tx)
			signers, err := VerifyTxSignatures(tx, chainID)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []custody.Address{aliceAddr, bobAddr}, signers)
		})
	}
}

func TestVerifyAfterEncoding(t *testing.T) {
	const chainID = "encoded-tx-chain"
	key := custodytest.Key(t, 3)
	addr := crypto.Address(key)

	tx := &custody.Tx{
		Instructions: []custody.Instruction{
			{
				ProgramID: custodytest.NewAddress(9),
				Accounts:  []custody.AccountMeta{custody.ReadOnly(addr, true)},
			},
		},
	}
	require.NoError(t, SignTx(tx, chainID, key))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	var decoded custody.Tx
	require.NoError(t, decoded.Unmarshal(raw))

	signers, err := VerifyTxSignatures(&decoded, chainID)
	require.NoError(t, err)
	assert.Equal(t, []custody.Address{addr}, signers)
}
