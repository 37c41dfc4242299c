package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confKey = "escrow"

// Configuration is the escrow program configuration stored in the state.
type Configuration struct {
	// ProgramID is the address the escrow program is deployed under.
	ProgramID custody.Address `json:"program_id"`
}

// Validate checks the configuration.
func (c *Configuration) Validate() error {
	if c.ProgramID.IsZero() {
		return errors.Wrap(errors.ErrInvalidInput, "empty program id")
	}
	return nil
}

// Marshal serializes the configuration.
func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal(&configurationWire{ProgramId: c.ProgramID.Bytes()})
}

// Unmarshal loads the configuration.
func (c *Configuration) Unmarshal(raw []byte) error {
	var w configurationWire
	if err := proto.Unmarshal(raw, &w); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	id, err := custody.NewAddress(w.ProgramId)
	if err != nil {
		return err
	}
	c.ProgramID = id
	return nil
}

// LoadConfiguration returns the escrow configuration saved at genesis.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var c Configuration
	if err := gconf.Load(db, confKey, &c); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the escrow configuration. It is required.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var c Configuration
	return gconf.InitConfig(db, opts, confKey, &c)
}

type configurationWire struct {
	ProgramId []byte `protobuf:"bytes,1,opt,name=program_id,json=programId,proto3" json:"program_id,omitempty"`
}

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}
