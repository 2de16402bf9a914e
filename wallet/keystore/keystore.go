package keystore

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1"

	"github.com/aurumchain/aurum/primitives"
	"github.com/aurumchain/aurum/wallet/address"
)

// Keypair is a pair of private and public keys.
type Keypair struct {
	key    secp256k1.PrivateKey
	pubkey secp256k1.PublicKey
}

// Transfer creates a signed transfer transaction to the given address for a
// given amount and fee, spending from the given nonce.
func (k *Keypair) Transfer(to address.Address, amount uint64, fee uint64, nonce uint64) (*primitives.Transaction, error) {
	toPkh, err := to.ToPubkeyHash()
	if err != nil {
		return nil, err
	}

	tx := primitives.Transaction{
		ToPubkeyHash: toPkh,
		Amount:       amount,
		Fee:          fee,
		Nonce:        nonce,
	}
	copy(tx.FromPubkey[:], k.pubkey.SerializeCompressed())

	messageHash := tx.SignatureMessage()

	sigBytes, err := secp256k1.SignCompact(&k.key, messageHash[:], true)
	if err != nil {
		return nil, err
	}

	copy(tx.Signature[:], sigBytes)

	return &tx, nil
}

// GetAddress gets the address of the keypair.
func (k *Keypair) GetAddress() address.Address {
	return address.PubkeyToAddress(&k.pubkey)
}

// GetPubkeyHash gets the pubkey hash of this keypair.
func (k *Keypair) GetPubkeyHash() [20]byte {
	return address.HashPubkey(&k.pubkey)
}

// GetPubkey gets the compressed public key of this keypair.
func (k *Keypair) GetPubkey() [33]byte {
	var out [33]byte
	copy(out[:], k.pubkey.SerializeCompressed())
	return out
}

// GenerateRandomKeypair generates a random keypair.
func GenerateRandomKeypair() (*Keypair, error) {
	randKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}

	pub := randKey.PubKey()

	return &Keypair{
		key:    *randKey,
		pubkey: *pub,
	}, nil
}

// KeypairFromHex is a keypair from a hex string.
func KeypairFromHex(hexString string) (*Keypair, error) {
	privBytes, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, err
	}

	return KeypairFromBytes(privBytes), nil
}

// KeypairFromBytes is a keypair from a byte array.
func KeypairFromBytes(privBytes []byte) *Keypair {
	key, pub := secp256k1.PrivKeyFromBytes(privBytes)

	return &Keypair{
		key:    *key,
		pubkey: *pub,
	}
}
