package address

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1"

	"github.com/aurumchain/aurum/chainhash"
)

// AurumAddressVersion is the version used for addresses.
const AurumAddressVersion = 55

// Address is an Aurum address.
type Address string

// HashPubkey hashes a public key into the 20-byte pubkey hash addresses are
// built from.
func HashPubkey(pubkey *secp256k1.PublicKey) [20]byte {
	pkh := chainhash.HashH(pubkey.SerializeCompressed())

	var out [20]byte
	copy(out[:], pkh[:20])
	return out
}

// PubkeyToAddress converts a pubkey to an address.
func PubkeyToAddress(pubkey *secp256k1.PublicKey) Address {
	pkh := HashPubkey(pubkey)

	addr := base58.CheckEncode(pkh[:], AurumAddressVersion)

	return Address(addr)
}

// FromPubkeyHash converts a pubkey hash to an address.
func FromPubkeyHash(pkh [20]byte) Address {
	return Address(base58.CheckEncode(pkh[:], AurumAddressVersion))
}

// ToPubkeyHash converts an address to a pubkey hash.
func (a Address) ToPubkeyHash() ([20]byte, error) {
	pkh, version, err := base58.CheckDecode(string(a))
	if err != nil {
		return [20]byte{}, err
	}

	if version != AurumAddressVersion {
		return [20]byte{}, fmt.Errorf("invalid version, expecting: %d, got: %d", AurumAddressVersion, version)
	}

	if len(pkh) != 20 {
		return [20]byte{}, fmt.Errorf("invalid address length, expected: 20, got: %d", len(pkh))
	}

	var out [20]byte
	copy(out[:], pkh)
	return out, nil
}

// ValidateAddress returns true if the address passed is valid.
func ValidateAddress(a string) bool {
	pkh, version, err := base58.CheckDecode(a)
	if err != nil {
		return false
	}

	if version != AurumAddressVersion {
		return false
	}

	if len(pkh) != 20 {
		return false
	}

	return true
}
