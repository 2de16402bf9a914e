package primitives

import (
	"bytes"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-ssz"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/utils"
)

// Transaction is a transfer of funds from one account to another.
type Transaction struct {
	FromPubkey   [33]byte
	ToPubkeyHash [20]byte
	Amount       uint64
	Fee          uint64
	Nonce        uint64
	Signature    [65]byte
}

// Hash gets the identity of the transaction.
func (t *Transaction) Hash() (chainhash.Hash, error) {
	return ssz.HashTreeRoot(t)
}

// Serialize serializes the transaction to bytes.
func (t *Transaction) Serialize() []byte {
	buf := new(bytes.Buffer)
	w := utils.NewWriter(buf)
	w.WriteBytes(t.FromPubkey[:])
	w.WriteBytes(t.ToPubkeyHash[:])
	w.WriteUint64(t.Amount)
	w.WriteUint64(t.Fee)
	w.WriteUint64(t.Nonce)
	w.WriteBytes(t.Signature[:])
	return buf.Bytes()
}

// Deserialize reads a transaction from the reader.
func (t *Transaction) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, t.FromPubkey[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, t.ToPubkeyHash[:]); err != nil {
		return err
	}
	reader := utils.NewReader(r)
	var err error
	if t.Amount, err = reader.ReadUint64(); err != nil {
		return err
	}
	if t.Fee, err = reader.ReadUint64(); err != nil {
		return err
	}
	if t.Nonce, err = reader.ReadUint64(); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, t.Signature[:]); err != nil {
		return err
	}
	return nil
}

// SignatureMessage gets the hash of the transaction with a zeroed out
// signature, which is the message actually being signed.
func (t *Transaction) SignatureMessage() chainhash.Hash {
	unsigned := *t
	unsigned.Signature = [65]byte{}
	return chainhash.HashH(unsigned.Serialize())
}

// DecompressSignature decompresses a compact signature into its R and S
// components.
func DecompressSignature(sig [65]byte) *secp256k1.Signature {
	R := new(big.Int)
	S := new(big.Int)

	R.SetBytes(sig[1:33])
	S.SetBytes(sig[33:65])

	return secp256k1.NewSignature(R, S)
}

// VerifySignature checks that the signature was created by the owner of
// FromPubkey over this transaction's fields.
func (t *Transaction) VerifySignature() error {
	messageHash := t.SignatureMessage()

	pub, _, err := secp256k1.RecoverCompact(t.Signature[:], messageHash[:])
	if err != nil {
		return errors.Wrap(err, "could not recover pubkey from signature")
	}

	var recovered [33]byte
	copy(recovered[:], pub.SerializeCompressed())

	if recovered != t.FromPubkey {
		return errors.New("signature was not created by the sender")
	}

	sig := DecompressSignature(t.Signature)
	if !sig.Verify(messageHash[:], pub) {
		return errors.New("signature does not verify")
	}

	return nil
}

// FromPubkeyHash gets the pubkey hash of the sending account.
func (t *Transaction) FromPubkeyHash() ([20]byte, error) {
	pub, err := secp256k1.ParsePubKey(t.FromPubkey[:])
	if err != nil {
		return [20]byte{}, err
	}

	pkh := chainhash.HashH(pub.SerializeCompressed())

	var out [20]byte
	copy(out[:], pkh[:20])
	return out, nil
}
