package escrow

import (
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPacking(t *testing.T) {
	rec := Escrow{
		IsInitialized:             true,
		Initializer:               custodytest.NewAddress(1),
		HoldingAccount:            custodytest.NewAddress(2),
		InitializerReceiveAccount: custodytest.NewAddress(3),
		ExpectedAmount:            50,
	}
	raw := make([]byte, RecordLen)
	require.NoError(t, rec.Pack(raw))
	assert.Equal(t, 105, len(raw))
	assert.Equal(t, byte(1), raw[0])
	assert.Equal(t, rec.Initializer[:], raw[1:33])
	assert.Equal(t, rec.HoldingAccount[:], raw[33:65])
	assert.Equal(t, rec.InitializerReceiveAccount[:], raw[65:97])
	assert.Equal(t, []byte{50, 0, 0, 0, 0, 0, 0, 0}, raw[97:])

	var got Escrow
	require.NoError(t, got.Unpack(raw))
	assert.Equal(t, rec, got)

	err := rec.Pack(make([]byte, RecordLen+1))
	assert.True(t, errors.ErrInvalidAccountData.Is(err))
}

func TestRecordUnpack(t *testing.T) {
	withFlag := func(flag byte) []byte {
		raw := make([]byte, RecordLen)
		raw[0] = flag
		return raw
	}

	cases := map[string]struct {
		raw             []byte
		wantErr         *errors.Error
		wantUncheckdErr *errors.Error
	}{
		"zeroed storage": {
			raw:     withFlag(0),
			wantErr: errors.ErrUninitialized,
		},
		"initialized": {
			raw: withFlag(1),
		},
		"invalid flag": {
			raw:             withFlag(2),
			wantErr:         errors.ErrInvalidAccountData,
			wantUncheckdErr: errors.ErrInvalidAccountData,
		},
		"too short": {
			raw:             make([]byte, RecordLen-1),
			wantErr:         errors.ErrInvalidAccountData,
			wantUncheckdErr: errors.ErrInvalidAccountData,
		},
		"empty": {
			raw:             nil,
			wantErr:         errors.ErrInvalidAccountData,
			wantUncheckdErr: errors.ErrInvalidAccountData,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var rec Escrow
			err := rec.Unpack(tc.raw)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}

			err = rec.UnpackUnchecked(tc.raw)
			if tc.wantUncheckdErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantUncheckdErr.Is(err), "got %+v", err)
			}
		})
	}
}
