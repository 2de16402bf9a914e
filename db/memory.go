package db

import (
	"fmt"
	"sync"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
)

var _ Database = (*InMemoryDB)(nil)

// InMemoryDB is a very basic block database.
type InMemoryDB struct {
	blocks   map[chainhash.Hash]primitives.Block
	accounts map[[20]byte]primitives.AccountState
	head     *chainhash.Hash
	lock     *sync.Mutex
}

// NewInMemoryDB initializes a new in-memory DB.
func NewInMemoryDB() *InMemoryDB {
	return &InMemoryDB{
		blocks:   make(map[chainhash.Hash]primitives.Block),
		accounts: make(map[[20]byte]primitives.AccountState),
		lock:     new(sync.Mutex),
	}
}

// GetBlockForHash is a database lookup function.
func (db *InMemoryDB) GetBlockForHash(h chainhash.Hash) (*primitives.Block, error) {
	db.lock.Lock()
	defer db.lock.Unlock()
	out, found := db.blocks[h]
	if !found {
		return nil, fmt.Errorf("could not find block with hash")
	}
	return &out, nil
}

// SetBlock adds the block to storage.
func (db *InMemoryDB) SetBlock(b primitives.Block) error {
	db.lock.Lock()
	db.blocks[b.Hash()] = b
	db.lock.Unlock()
	return nil
}

// GetHeadBlockHash gets the head block hash.
func (db *InMemoryDB) GetHeadBlockHash() (*chainhash.Hash, error) {
	db.lock.Lock()
	defer db.lock.Unlock()
	if db.head == nil {
		return nil, fmt.Errorf("no head block set")
	}
	return db.head, nil
}

// SetHeadBlockHash sets the head block hash.
func (db *InMemoryDB) SetHeadBlockHash(h chainhash.Hash) error {
	db.lock.Lock()
	db.head = &h
	db.lock.Unlock()
	return nil
}

// SetAccountState sets the state of a single account.
func (db *InMemoryDB) SetAccountState(pkh [20]byte, state primitives.AccountState) error {
	db.lock.Lock()
	db.accounts[pkh] = state
	db.lock.Unlock()
	return nil
}

// GetAccountStates gets the states of every account in the database.
func (db *InMemoryDB) GetAccountStates() (map[[20]byte]primitives.AccountState, error) {
	db.lock.Lock()
	defer db.lock.Unlock()
	out := make(map[[20]byte]primitives.AccountState, len(db.accounts))
	for pkh, state := range db.accounts {
		out[pkh] = state
	}
	return out, nil
}

// Close closes the database.
func (db *InMemoryDB) Close() error {
	return nil
}
