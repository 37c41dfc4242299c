package custody

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// AccountMeta references an account used by an instruction. The position of
// an account in the instruction account list defines its role.
type AccountMeta struct {
	Address    Address `json:"address"`
	IsSigner   bool    `json:"is_signer,omitempty"`
	IsWritable bool    `json:"is_writable,omitempty"`
}

// Writable returns a meta of a writable account.
func Writable(addr Address, signer bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: signer, IsWritable: true}
}

// ReadOnly returns a meta of an account that is only read.
func ReadOnly(addr Address, signer bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: signer}
}

// Instruction is a single call into a program.
type Instruction struct {
	ProgramID Address       `json:"program_id"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}

// Signature is an ed25519 signature of the transaction sign bytes made by
// the key of Address.
type Signature struct {
	Address   Address `json:"address"`
	Signature []byte  `json:"signature"`
}

// Tx represents the data sent from the user to the chain. It includes the
// instructions, executed in order, along with the signatures of all accounts
// that any instruction marks as a signer.
type Tx struct {
	Instructions []Instruction `json:"instructions"`
	Signatures   []Signature   `json:"signatures,omitempty"`
}

// Signers returns all addresses that must sign this transaction, in the
// order of their first appearance.
func (tx *Tx) Signers() []Address {
	var signers []Address
	seen := make(map[Address]struct{})
	for _, ix := range tx.Instructions {
		for _, a := range ix.Accounts {
			if !a.IsSigner {
				continue
			}
			if _, ok := seen[a.Address]; ok {
				continue
			}
			seen[a.Address] = struct{}{}
			signers = append(signers, a.Address)
		}
	}
	return signers
}

// SignBytes returns the serialized transaction without signatures. This is
// the transaction part of the message every signer signs.
func (tx *Tx) SignBytes() ([]byte, error) {
	unsigned := Tx{Instructions: tx.Instructions}
	return unsigned.Marshal()
}

// Marshal encodes the transaction using the protobuf wire format.
func (tx *Tx) Marshal() ([]byte, error) {
	w := &wireTx{}
	for _, ix := range tx.Instructions {
		wi := &wireInstruction{
			ProgramId: ix.ProgramID.Bytes(),
			Data:      ix.Data,
		}
		for _, a := range ix.Accounts {
			wi.Accounts = append(wi.Accounts, &wireAccountMeta{
				Address:    a.Address.Bytes(),
				IsSigner:   a.IsSigner,
				IsWritable: a.IsWritable,
			})
		}
		w.Instructions = append(w.Instructions, wi)
	}
	for _, s := range tx.Signatures {
		w.Signatures = append(w.Signatures, &wireSignature{
			Address:   s.Address.Bytes(),
			Signature: s.Signature,
		})
	}
	raw, err := proto.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// Unmarshal decodes a transaction from the protobuf wire format.
func (tx *Tx) Unmarshal(raw []byte) error {
	var w wireTx
	if err := proto.Unmarshal(raw, &w); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	res := Tx{}
	for i, wi := range w.Instructions {
		program, err := NewAddress(wi.ProgramId)
		if err != nil {
			return errors.Wrapf(err, "instruction %d program", i)
		}
		ix := Instruction{ProgramID: program, Data: wi.Data}
		for j, wa := range wi.Accounts {
			addr, err := NewAddress(wa.Address)
			if err != nil {
				return errors.Wrapf(err, "instruction %d account %d", i, j)
			}
			ix.Accounts = append(ix.Accounts, AccountMeta{
				Address:    addr,
				IsSigner:   wa.IsSigner,
				IsWritable: wa.IsWritable,
			})
		}
		res.Instructions = append(res.Instructions, ix)
	}
	for i, ws := range w.Signatures {
		addr, err := NewAddress(ws.Address)
		if err != nil {
			return errors.Wrapf(err, "signature %d", i)
		}
		res.Signatures = append(res.Signatures, Signature{Address: addr, Signature: ws.Signature})
	}
	*tx = res
	return nil
}

// Wire representation of a transaction. These types are encoded by the
// protobuf library using their struct tags.

type wireTx struct {
	Instructions []*wireInstruction `protobuf:"bytes,1,rep,name=instructions,proto3" json:"instructions,omitempty"`
	Signatures   []*wireSignature   `protobuf:"bytes,2,rep,name=signatures,proto3" json:"signatures,omitempty"`
}

func (m *wireTx) Reset()         { *m = wireTx{} }
func (m *wireTx) String() string { return proto.CompactTextString(m) }
func (*wireTx) ProtoMessage()    {}

type wireInstruction struct {
	ProgramId []byte             `protobuf:"bytes,1,opt,name=program_id,json=programId,proto3" json:"program_id,omitempty"`
	Accounts  []*wireAccountMeta `protobuf:"bytes,2,rep,name=accounts,proto3" json:"accounts,omitempty"`
	Data      []byte             `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *wireInstruction) Reset()         { *m = wireInstruction{} }
func (m *wireInstruction) String() string { return proto.CompactTextString(m) }
func (*wireInstruction) ProtoMessage()    {}

type wireAccountMeta struct {
	Address    []byte `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	IsSigner   bool   `protobuf:"varint,2,opt,name=is_signer,json=isSigner,proto3" json:"is_signer,omitempty"`
	IsWritable bool   `protobuf:"varint,3,opt,name=is_writable,json=isWritable,proto3" json:"is_writable,omitempty"`
}

func (m *wireAccountMeta) Reset()         { *m = wireAccountMeta{} }
func (m *wireAccountMeta) String() string { return proto.CompactTextString(m) }
func (*wireAccountMeta) ProtoMessage()    {}

type wireSignature struct {
	Address   []byte `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	Signature []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *wireSignature) Reset()         { *m = wireSignature{} }
func (m *wireSignature) String() string { return proto.CompactTextString(m) }
func (*wireSignature) ProtoMessage()    {}
