package escrow

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/stretchr/testify/assert"
)

func TestAuthority(t *testing.T) {
	program := custodytest.NewAddress(500)

	addr, bump := Authority(program)
	again, againBump := Authority(program)
	assert.Equal(t, addr, again, "derivation must be deterministic")
	assert.Equal(t, bump, againBump)

	assert.False(t, custody.IsOnCurve(addr), "no private key may exist for the authority")
	assert.True(t, custody.VerifyDerivedAddress(addr, [][]byte{[]byte("escrow")}, bump, program))

	other, _ := Authority(custodytest.NewAddress(501))
	assert.NotEqual(t, addr, other)
}
