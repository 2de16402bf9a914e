package db

import (
	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
)

// Database is a very basic interface for storing the chain and the account
// state derived from it.
type Database interface {
	GetBlockForHash(h chainhash.Hash) (*primitives.Block, error)
	SetBlock(b primitives.Block) error
	GetHeadBlockHash() (*chainhash.Hash, error)
	SetHeadBlockHash(h chainhash.Hash) error
	GetAccountStates() (map[[20]byte]primitives.AccountState, error)
	SetAccountState(pkh [20]byte, state primitives.AccountState) error
	Close() error
}
