package primitives_test

import (
	"bytes"
	"testing"

	"github.com/go-test/deep"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
)

func TestBlockSerializeDeserialize(t *testing.T) {
	tx1, _ := signedTransfer(t)
	tx2, _ := signedTransfer(t)

	merkleRoot, err := primitives.TransactionMerkleRoot([]primitives.Transaction{*tx1, *tx2})
	if err != nil {
		t.Fatal(err)
	}

	block := primitives.Block{
		Header: primitives.BlockHeader{
			PrevBlockHash: chainhash.HashH([]byte("prev")),
			MerkleRoot:    merkleRoot,
			Height:        12,
			Timestamp:     1600000000,
		},
		Transactions: []primitives.Transaction{*tx1, *tx2},
	}

	var out primitives.Block
	if err := out.Deserialize(bytes.NewReader(block.Serialize())); err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(block, out); diff != nil {
		t.Fatal(diff)
	}
}

func TestEmptyBlockSerializeDeserialize(t *testing.T) {
	block := primitives.Block{
		Header: primitives.BlockHeader{
			Height:    1,
			Timestamp: 1600000000,
		},
	}

	var out primitives.Block
	if err := out.Deserialize(bytes.NewReader(block.Serialize())); err != nil {
		t.Fatal(err)
	}

	if out.Hash() != block.Hash() {
		t.Fatal("expected deserialized block to have the same hash")
	}
	if len(out.Transactions) != 0 {
		t.Fatalf("expected no transactions, got: %d", len(out.Transactions))
	}
}

func TestTransactionMerkleRoot(t *testing.T) {
	tx1, _ := signedTransfer(t)
	tx2, _ := signedTransfer(t)
	tx3, _ := signedTransfer(t)

	empty, err := primitives.TransactionMerkleRoot(nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty != (chainhash.Hash{}) {
		t.Fatal("expected empty merkle root to be the zero hash")
	}

	single, err := primitives.TransactionMerkleRoot([]primitives.Transaction{*tx1})
	if err != nil {
		t.Fatal(err)
	}
	txHash, err := tx1.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if single != txHash {
		t.Fatal("expected single-transaction merkle root to be the transaction hash")
	}

	// an odd number of leaves duplicates the last leaf
	odd, err := primitives.TransactionMerkleRoot([]primitives.Transaction{*tx1, *tx2, *tx3})
	if err != nil {
		t.Fatal(err)
	}
	padded, err := primitives.TransactionMerkleRoot([]primitives.Transaction{*tx1, *tx2, *tx3, *tx3})
	if err != nil {
		t.Fatal(err)
	}
	if odd != padded {
		t.Fatal("expected odd merkle root to duplicate the last leaf")
	}

	reordered, err := primitives.TransactionMerkleRoot([]primitives.Transaction{*tx2, *tx1, *tx3})
	if err != nil {
		t.Fatal(err)
	}
	if odd == reordered {
		t.Fatal("expected merkle root to depend on transaction order")
	}
}
