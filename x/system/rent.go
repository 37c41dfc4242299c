package system

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// RentSysvarID is the well-known address under which the rent
// configuration is exposed to instructions.
var RentSysvarID = custody.MustParseAddress("SysvarRent111111111111111111111111111111111")

const (
	// AccountStorageOverhead is the number of bytes every account costs
	// on top of its data.
	AccountStorageOverhead = 128

	// DefaultLamportsPerByteYear is the default rental rate.
	DefaultLamportsPerByteYear = 3480

	// DefaultExemptionThreshold is the default number of years an
	// account must be able to pay for to be exempt.
	DefaultExemptionThreshold = 2.0

	rentConfKey = "rent"
)

// Rent defines the minimum balance of accounts that hold data.
type Rent struct {
	LamportsPerByteYear uint64  `json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `json:"exemption_threshold"`
}

// DefaultRent returns the default rent configuration.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance returns the lamports an account holding dataLen bytes
// needs to be rent exempt.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := uint64(AccountStorageOverhead + dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt returns true if an account with given balance and data size is
// exempt from rent.
func (r Rent) IsExempt(lamports uint64, dataLen int) bool {
	return lamports >= r.MinimumBalance(dataLen)
}

// Validate checks the configuration.
func (r *Rent) Validate() error {
	if r.ExemptionThreshold < 0 || math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) {
		return errors.Wrapf(errors.ErrInvalidInput, "exemption threshold %v", r.ExemptionThreshold)
	}
	return nil
}

// Marshal serializes the configuration.
func (r *Rent) Marshal() ([]byte, error) {
	return proto.Marshal(&rentWire{
		LamportsPerByteYear: r.LamportsPerByteYear,
		ExemptionThreshold:  r.ExemptionThreshold,
	})
}

// Unmarshal loads the configuration.
func (r *Rent) Unmarshal(raw []byte) error {
	var w rentWire
	if err := proto.Unmarshal(raw, &w); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	r.LamportsPerByteYear = w.LamportsPerByteYear
	r.ExemptionThreshold = w.ExemptionThreshold
	return nil
}

// SaveRent stores the rent configuration.
func SaveRent(db gconf.Store, r Rent) error {
	return gconf.Save(db, rentConfKey, &r)
}

// LoadRent returns the rent configuration exposed by the sysvar account
// passed to an instruction. ErrInvalidInput is returned if the address is
// not the rent sysvar.
func LoadRent(db gconf.ReadStore, sysvar custody.Address) (Rent, error) {
	if sysvar != RentSysvarID {
		return Rent{}, errors.Wrapf(errors.ErrInvalidInput, "%s is not the rent sysvar", sysvar)
	}
	var r Rent
	if err := gconf.Load(db, rentConfKey, &r); err != nil {
		return Rent{}, errors.Wrap(err, "rent")
	}
	return r, nil
}

type rentWire struct {
	LamportsPerByteYear uint64  `protobuf:"varint,1,opt,name=lamports_per_byte_year,json=lamportsPerByteYear,proto3" json:"lamports_per_byte_year,omitempty"`
	ExemptionThreshold  float64 `protobuf:"fixed64,2,opt,name=exemption_threshold,json=exemptionThreshold,proto3" json:"exemption_threshold,omitempty"`
}

func (m *rentWire) Reset()         { *m = rentWire{} }
func (m *rentWire) String() string { return proto.CompactTextString(m) }
func (*rentWire) ProtoMessage()    {}
