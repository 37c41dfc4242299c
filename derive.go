package custody

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
	"github.com/iov-one/custody/errors"
)

const (
	// MaxSeedLength is the maximum length of a single derivation seed.
	MaxSeedLength = 32
	// MaxSeeds is the maximum number of seeds, including the bump.
	MaxSeeds = 16

	derivedAddressMarker = "ProgramDerivedAddress"
)

// CreateDerivedAddress returns the address derived from the seeds and the
// program address. Derived addresses are hashes that do not decode to a
// point on the ed25519 curve, so no private key can ever sign for them. Only
// the program they are derived from can authorize on their behalf.
//
// ErrInvalidInput is returned when the seeds exceed the limits or when the
// resulting hash is a valid curve point.
func CreateDerivedAddress(seeds [][]byte, program Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return ZeroAddress, errors.ErrInvalidInput.Newf("%d seeds, max %d", len(seeds), MaxSeeds)
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return ZeroAddress, errors.ErrInvalidInput.Newf("seed length %d, max %d", len(s), MaxSeedLength)
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write(program[:])
	_, _ = h.Write([]byte(derivedAddressMarker))

	var addr Address
	copy(addr[:], h.Sum(nil))
	if IsOnCurve(addr) {
		return ZeroAddress, errors.ErrInvalidInput.New("derived address on curve")
	}
	return addr, nil
}

// FindDerivedAddress searches for a bump byte that, appended to the seeds,
// yields a valid derived address. Bumps are tried from 255 down, so the
// result is deterministic for a given set of seeds and program.
//
// It panics when no bump works, which happens with negligible probability
// or when the seeds themselves are invalid.
func FindDerivedAddress(seeds [][]byte, program Address) (Address, uint8) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateDerivedAddress(withBump, program)
		if err == nil {
			return addr, uint8(bump)
		}
	}
	panic("unable to find a viable derived address bump")
}

// VerifyDerivedAddress returns true if addr is the address derived from the
// seeds, the bump and the program. This is the proof a program presents in
// place of a signature.
func VerifyDerivedAddress(addr Address, seeds [][]byte, bump uint8, program Address) bool {
	withBump := append(append([][]byte{}, seeds...), []byte{bump})
	derived, err := CreateDerivedAddress(withBump, program)
	if err != nil {
		return false
	}
	return derived == addr
}

// IsOnCurve returns true if the address is the compressed form of a point on
// the ed25519 curve.
func IsOnCurve(addr Address) bool {
	var p edwards25519.ExtendedGroupElement
	b := [32]byte(addr)
	return p.FromBytes(&b)
}
