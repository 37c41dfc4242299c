package custody

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxSerialization(t *testing.T) {
	a, b, program := newTestAddress(t), newTestAddress(t), newTestAddress(t)
	tx := Tx{
		Instructions: []Instruction{
			{
				ProgramID: program,
				Accounts:  []AccountMeta{Writable(a, true), ReadOnly(b, false)},
				Data:      []byte{1, 2, 3},
			},
		},
		Signatures: []Signature{
			{Address: a, Signature: []byte("signature")},
		},
	}

	raw, err := tx.Marshal()
	require.NoError(t, err)

	var got Tx
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, tx, got)
}

func TestTxSignBytes(t *testing.T) {
	a, program := newTestAddress(t), newTestAddress(t)
	tx := Tx{
		Instructions: []Instruction{
			{ProgramID: program, Accounts: []AccountMeta{Writable(a, true)}, Data: []byte{9}},
		},
	}
	unsigned, err := tx.SignBytes()
	require.NoError(t, err)

	tx.Signatures = []Signature{{Address: a, Signature: []byte("sig")}}
	signed, err := tx.SignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed, "signatures must not be signed")

	tx.Instructions[0].Data = []byte{8}
	changed, err := tx.SignBytes()
	require.NoError(t, err)
	assert.False(t, bytes.Equal(signed, changed))
}

func TestTxSigners(t *testing.T) {
	a, b, c, program := newTestAddress(t), newTestAddress(t), newTestAddress(t), newTestAddress(t)
	tx := Tx{
		Instructions: []Instruction{
			{ProgramID: program, Accounts: []AccountMeta{Writable(a, true), ReadOnly(c, false)}},
			{ProgramID: program, Accounts: []AccountMeta{ReadOnly(b, true), Writable(a, true)}},
		},
	}
	assert.Equal(t, []Address{a, b}, tx.Signers())
}
