package db

import (
	"bytes"
	"encoding/binary"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
)

var _ Database = (*BadgerDB)(nil)

// BadgerDB is a wrapper around the badger database to provide functions for
// storing blocks, the chain head, and account states.
type BadgerDB struct {
	db *badger.DB
}

// NewBadgerDB initializes the badger database in the supplied directory.
func NewBadgerDB(databaseDir string) (*BadgerDB, error) {
	db, err := badger.Open(badger.DefaultOptions(databaseDir))
	if err != nil {
		return nil, errors.Wrap(err, "could not open badger database")
	}

	return &BadgerDB{
		db: db,
	}, nil
}

// Close closes the database.
func (b *BadgerDB) Close() error {
	return b.db.Close()
}

var blockPrefix = []byte("block")

// GetBlockForHash gets a block for a certain block hash.
func (b *BadgerDB) GetBlockForHash(h chainhash.Hash) (*primitives.Block, error) {
	key := append(blockPrefix, h[:]...)
	txn := b.db.NewTransaction(false)
	defer txn.Discard()
	i, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	blockBytesCopy, err := i.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	block := new(primitives.Block)
	if err := block.Deserialize(bytes.NewReader(blockBytesCopy)); err != nil {
		return nil, err
	}

	return block, nil
}

// SetBlock sets a block for a certain block hash.
func (b *BadgerDB) SetBlock(block primitives.Block) error {
	blockHash := block.Hash()

	key := append(blockPrefix, blockHash[:]...)

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, block.Serialize())
	})
}

var headBlockKey = []byte("head_block")

// GetHeadBlockHash gets the hash of the head block.
func (b *BadgerDB) GetHeadBlockHash() (*chainhash.Hash, error) {
	txn := b.db.NewTransaction(false)
	defer txn.Discard()
	i, err := txn.Get(headBlockKey)
	if err != nil {
		return nil, err
	}
	headBytes, err := i.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return chainhash.NewHash(headBytes)
}

// SetHeadBlockHash sets the hash of the head block.
func (b *BadgerDB) SetHeadBlockHash(h chainhash.Hash) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(headBlockKey, h[:])
	})
}

var accountPrefix = []byte("acct")

func serializeAccountState(state primitives.AccountState) []byte {
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], state.Balance)
	binary.BigEndian.PutUint64(out[8:16], state.Nonce)
	return out[:]
}

func deserializeAccountState(b []byte) (primitives.AccountState, error) {
	if len(b) != 16 {
		return primitives.AccountState{}, errors.Errorf("expected account state to be 16 bytes, got: %d", len(b))
	}
	return primitives.AccountState{
		Balance: binary.BigEndian.Uint64(b[0:8]),
		Nonce:   binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

// SetAccountState sets the state of a single account.
func (b *BadgerDB) SetAccountState(pkh [20]byte, state primitives.AccountState) error {
	key := append(accountPrefix, pkh[:]...)

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, serializeAccountState(state))
	})
}

// GetAccountStates gets the states of every account in the database.
func (b *BadgerDB) GetAccountStates() (map[[20]byte]primitives.AccountState, error) {
	out := make(map[[20]byte]primitives.AccountState)

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = accountPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(accountPrefix); it.ValidForPrefix(accountPrefix); it.Next() {
			item := it.Item()

			key := item.Key()
			if len(key) != len(accountPrefix)+20 {
				return errors.Errorf("invalid account key length: %d", len(key))
			}
			var pkh [20]byte
			copy(pkh[:], key[len(accountPrefix):])

			stateBytes, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			state, err := deserializeAccountState(stateBytes)
			if err != nil {
				return err
			}

			out[pkh] = state
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
