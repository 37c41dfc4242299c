package escrow

import (
	"github.com/iov-one/custody"
)

// authoritySeed is the seed the escrow authority is derived from.
var authoritySeed = []byte("escrow")

// Authority returns the address that holds custody of every holding
// account of the escrow program, together with the bump that derives it.
// The address is a pure function of the program id and is never stored.
func Authority(programID custody.Address) (custody.Address, uint8) {
	return custody.FindDerivedAddress(authoritySeeds(), programID)
}

func authoritySeeds() [][]byte {
	return [][]byte{authoritySeed}
}
