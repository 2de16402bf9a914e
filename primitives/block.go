package primitives

import (
	"bytes"
	"io"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/utils"
)

// BlockHeader is the header of a block in the chain.
type BlockHeader struct {
	PrevBlockHash chainhash.Hash
	MerkleRoot    chainhash.Hash
	Height        uint64
	Timestamp     uint64
}

// Serialize serializes the block header to bytes.
func (h *BlockHeader) Serialize() []byte {
	buf := new(bytes.Buffer)
	w := utils.NewWriter(buf)
	w.WriteBytes(h.PrevBlockHash[:])
	w.WriteBytes(h.MerkleRoot[:])
	w.WriteUint64(h.Height)
	w.WriteUint64(h.Timestamp)
	return buf.Bytes()
}

// Deserialize reads a block header from the reader.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, h.PrevBlockHash[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	reader := utils.NewReader(r)
	var err error
	if h.Height, err = reader.ReadUint64(); err != nil {
		return err
	}
	if h.Timestamp, err = reader.ReadUint64(); err != nil {
		return err
	}
	return nil
}

// Hash gets the hash of the block header.
func (h *BlockHeader) Hash() chainhash.Hash {
	return chainhash.HashH(h.Serialize())
}

// Block is a block in the chain.
type Block struct {
	Header       BlockHeader
	Transactions []Transaction
}

// Hash gets the hash of the block header.
func (b *Block) Hash() chainhash.Hash {
	return b.Header.Hash()
}

// Serialize serializes the block to bytes.
func (b *Block) Serialize() []byte {
	buf := new(bytes.Buffer)
	w := utils.NewWriter(buf)
	w.WriteBytes(b.Header.Serialize())
	w.WriteUint32(uint32(len(b.Transactions)))
	for i := range b.Transactions {
		w.WriteBytes(b.Transactions[i].Serialize())
	}
	return buf.Bytes()
}

// Deserialize reads a block from the reader.
func (b *Block) Deserialize(r io.Reader) error {
	if err := b.Header.Deserialize(r); err != nil {
		return err
	}
	reader := utils.NewReader(r)
	numTxs, err := reader.ReadUint32()
	if err != nil {
		return err
	}
	b.Transactions = make([]Transaction, numTxs)
	for i := range b.Transactions {
		if err := b.Transactions[i].Deserialize(r); err != nil {
			return err
		}
	}
	return nil
}

// CombineHashes combines two branches of a hash tree.
func CombineHashes(left *chainhash.Hash, right *chainhash.Hash) chainhash.Hash {
	return chainhash.HashH(append(left[:], right[:]...))
}

// TransactionMerkleRoot calculates the merkle root of a list of
// transactions.
func TransactionMerkleRoot(txs []Transaction) (chainhash.Hash, error) {
	if len(txs) == 0 {
		return chainhash.Hash{}, nil
	}

	hashes := make([]chainhash.Hash, len(txs))
	for i := range txs {
		h, err := txs[i].Hash()
		if err != nil {
			return chainhash.Hash{}, err
		}
		hashes[i] = h
	}

	for len(hashes) > 1 {
		if len(hashes)%2 == 1 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}
		next := make([]chainhash.Hash, len(hashes)/2)
		for i := range next {
			next[i] = CombineHashes(&hashes[i*2], &hashes[i*2+1])
		}
		hashes = next
	}

	return hashes[0], nil
}
