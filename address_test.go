package custody

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestAddressText(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	addr := PubKeyAddress(pub)

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var fromJSON Address
	require.NoError(t, json.Unmarshal(raw, &fromJSON))
	assert.True(t, addr.Equals(fromJSON))
}

func TestParseAddress(t *testing.T) {
	cases := map[string]struct {
		input   string
		wantErr *errors.Error
	}{
		"system program": {
			input: "11111111111111111111111111111111",
		},
		"too short": {
			input:   "1111",
			wantErr: errors.ErrInvalidInput,
		},
		"not base58": {
			input:   "0OIl",
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := ParseAddress(tc.input)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.True(t, tc.wantErr.Is(err), "%+v", err)
			}
		})
	}
}

func TestZeroAddress(t *testing.T) {
	var a Address
	assert.True(t, a.IsZero())
	assert.Equal(t, "11111111111111111111111111111111", a.String())

	var fromJSON Address
	require.NoError(t, json.Unmarshal([]byte(`""`), &fromJSON))
	assert.True(t, fromJSON.IsZero())
}
