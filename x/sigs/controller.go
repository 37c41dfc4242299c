package sigs

import (
	"crypto/sha512"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | signBytes
4bytes  | uint8        | ascii string | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string) ([]byte, error) {
	if !custody.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	output := make([]byte, 0, 4+1+len(chainID)+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx *custody.Tx, chainID string) ([]byte, error) {
	signBytes, err := tx.SignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID)
}

// SignTx signs the transaction with every given key and appends the
// signatures to it.
func SignTx(tx *custody.Tx, chainID string, keys ...ed25519.PrivateKey) error {
	toSign, err := BuildSignBytesTx(tx, chainID)
	if err != nil {
		return err
	}
	for _, key := range keys {
		pub := key.Public().(ed25519.PublicKey)
		tx.Signatures = append(tx.Signatures, custody.Signature{
			Address:   custody.PubKeyAddress(pub),
			Signature: ed25519.Sign(key, toSign),
		})
	}
	return nil
}

// VerifyTxSignatures checks that every account an instruction marks as a
// signer provided a valid signature. Signatures of accounts that are not
// required are verified as well and ignored otherwise.
//
// returns list of signer addresses, or error if any signature is missing
// or invalid
func VerifyTxSignatures(tx *custody.Tx, chainID string) ([]custody.Address, error) {
	toSign, err := BuildSignBytesTx(tx, chainID)
	if err != nil {
		return nil, err
	}

	valid := make(map[custody.Address]struct{}, len(tx.Signatures))
	for i, sig := range tx.Signatures {
		if err := VerifySignature(sig, toSign); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		valid[sig.Address] = struct{}{}
	}

	required := tx.Signers()
	for _, addr := range required {
		if _, ok := valid[addr]; !ok {
			return nil, errors.Wrapf(errors.ErrMissingSignature, "signer %s", addr)
		}
	}
	return required, nil
}

// VerifySignature checks one signature against the prehashed sign bytes.
// The signature address is the ed25519 public key.
func VerifySignature(sig custody.Signature, toSign []byte) error {
	if len(sig.Signature) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrMissingSignature, "malformed signature")
	}
	pub := ed25519.PublicKey(sig.Address.Bytes())
	if !ed25519.Verify(pub, toSign, sig.Signature) {
		return errors.Wrapf(errors.ErrMissingSignature, "invalid signature of %s", sig.Address)
	}
	return nil
}

// Authenticated verifies the transaction signatures with the chain id
// found in the context and returns a context carrying the signers.
func Authenticated(ctx custody.Context, tx *custody.Tx) (custody.Context, error) {
	signers, err := VerifyTxSignatures(tx, custody.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	return withSigners(ctx, signers), nil
}
