package system

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSerialization(t *testing.T) {
	cases := map[string]*Account{
		"no data":   {Lamports: 1, Owner: custody.Address{9}},
		"with data": {Lamports: 99, Owner: custody.Address{7}, Data: []byte("some data")},
	}
	for testName, acc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := acc.Marshal()
			require.NoError(t, err)
			var got Account
			require.NoError(t, got.Unmarshal(raw))
			assert.Equal(t, acc, &got)
		})
	}
}

func TestAccountUnmarshalMalformed(t *testing.T) {
	raw, err := (&Account{Lamports: 1, Data: []byte{1, 2, 3}}).Marshal()
	require.NoError(t, err)

	var acc Account
	err = acc.Unmarshal(raw[:len(raw)-1])
	assert.True(t, errors.ErrInvalidAccountData.Is(err))
	err = acc.Unmarshal(raw[:10])
	assert.True(t, errors.ErrInvalidAccountData.Is(err))
}

func TestBucketSaveEmptyDeletes(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	addr := custody.Address{3}

	require.NoError(t, b.Save(db, addr, &Account{Lamports: 5, Data: []byte{1}}))
	acc, err := b.Get(db, addr)
	require.NoError(t, err)
	require.NotNil(t, acc)

	require.NoError(t, b.Save(db, addr, &Account{}))
	acc, err = b.Get(db, addr)
	require.NoError(t, err)
	assert.Nil(t, acc)
}
