package blockchain

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/db"
	"github.com/aurumchain/aurum/primitives"
	"github.com/aurumchain/aurum/txpool"
)

// BlockNode is a block header with a reference to the previous block.
type BlockNode struct {
	primitives.BlockHeader
	BlockHash chainhash.Hash
	PrevNode  *BlockNode
}

// Genesis describes the initial state of the chain: the genesis timestamp
// and the premined account balances.
type Genesis struct {
	Timestamp   uint64
	Allocations map[[20]byte]uint64
}

// GenesisBlock builds the deterministic genesis block.
func (g *Genesis) GenesisBlock() primitives.Block {
	return primitives.Block{
		Header: primitives.BlockHeader{
			PrevBlockHash: chainhash.Hash{},
			MerkleRoot:    chainhash.Hash{},
			Height:        0,
			Timestamp:     g.Timestamp,
		},
	}
}

// Blockchain represents a chain of blocks and the account state at its
// head.
type Blockchain struct {
	lock *sync.RWMutex

	database db.Database
	index    map[chainhash.Hash]*BlockNode
	tip      *BlockNode
	state    *State

	notifees    []BlockchainNotifee
	notifeeLock *sync.Mutex
}

// NewBlockchain creates a blockchain backed by the given database. If the
// database already has a head block, the chain resumes from it; otherwise
// the genesis block is created and the premine applied.
func NewBlockchain(database db.Database, genesis Genesis) (*Blockchain, error) {
	b := &Blockchain{
		lock:        new(sync.RWMutex),
		database:    database,
		index:       make(map[chainhash.Hash]*BlockNode),
		state:       NewState(),
		notifeeLock: new(sync.Mutex),
	}

	headHash, err := database.GetHeadBlockHash()
	if err == nil {
		return b, b.resume(*headHash)
	}

	return b, b.initialize(genesis)
}

func (b *Blockchain) resume(headHash chainhash.Hash) error {
	headBlock, err := b.database.GetBlockForHash(headHash)
	if err != nil {
		return errors.Wrap(err, "could not load head block")
	}

	accounts, err := b.database.GetAccountStates()
	if err != nil {
		return errors.Wrap(err, "could not load account states")
	}
	for pkh, account := range accounts {
		b.state.SetAccountState(pkh, account)
	}

	node := &BlockNode{
		BlockHeader: headBlock.Header,
		BlockHash:   headHash,
	}
	b.index[headHash] = node
	b.tip = node

	logrus.WithFields(logrus.Fields{
		"hash":   headHash,
		"height": node.Height,
	}).Info("resuming chain from stored head")

	return nil
}

func (b *Blockchain) initialize(genesis Genesis) error {
	genesisBlock := genesis.GenesisBlock()
	genesisHash := genesisBlock.Hash()

	for pkh, balance := range genesis.Allocations {
		account := primitives.AccountState{Balance: balance}
		b.state.SetAccountState(pkh, account)
		if err := b.database.SetAccountState(pkh, account); err != nil {
			return err
		}
	}

	if err := b.database.SetBlock(genesisBlock); err != nil {
		return err
	}
	if err := b.database.SetHeadBlockHash(genesisHash); err != nil {
		return err
	}

	node := &BlockNode{
		BlockHeader: genesisBlock.Header,
		BlockHash:   genesisHash,
	}
	b.index[genesisHash] = node
	b.tip = node

	logrus.WithField("hash", genesisHash).Info("initialized new chain from genesis")

	return nil
}

// Tip returns the node at the tip of the chain.
func (b *Blockchain) Tip() *BlockNode {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.tip
}

// Height returns the height of the chain.
func (b *Blockchain) Height() uint64 {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.tip.Height
}

// GetBlockForHash gets a stored block by hash.
func (b *Blockchain) GetBlockForHash(h chainhash.Hash) (*primitives.Block, error) {
	return b.database.GetBlockForHash(h)
}

var _ txpool.Ledger = (*Blockchain)(nil)

// GetAccountState gets the current balance and nonce of an account.
func (b *Blockchain) GetAccountState(pkh [20]byte) (primitives.AccountState, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.GetAccountState(pkh)
}

// StateSnapshot returns a view of the account state at the current tip that
// does not change as new blocks connect.
func (b *Blockchain) StateSnapshot() (txpool.AccountReader, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.state.Copy(), nil
}

// ProcessBlock validates a block against the current head, applies its
// transactions to the account state, persists it, advances the tip, and
// notifies registered notifees.
func (b *Blockchain) ProcessBlock(block *primitives.Block) error {
	blockHash := block.Hash()

	b.lock.Lock()

	if block.Header.PrevBlockHash != b.tip.BlockHash {
		b.lock.Unlock()
		return errors.New("block does not extend the current head")
	}
	if block.Header.Height != b.tip.Height+1 {
		b.lock.Unlock()
		return errors.Errorf("expected block height %d, got: %d", b.tip.Height+1, block.Header.Height)
	}

	merkleRoot, err := primitives.TransactionMerkleRoot(block.Transactions)
	if err != nil {
		b.lock.Unlock()
		return err
	}
	if merkleRoot != block.Header.MerkleRoot {
		b.lock.Unlock()
		return errors.New("block merkle root does not match transactions")
	}

	newState := b.state.Copy()
	for i := range block.Transactions {
		if err := newState.ApplyTransaction(&block.Transactions[i]); err != nil {
			b.lock.Unlock()
			return errors.Wrap(err, "could not apply transaction")
		}
	}

	if err := b.database.SetBlock(*block); err != nil {
		b.lock.Unlock()
		return err
	}
	if err := b.persistTouchedAccounts(newState, block); err != nil {
		b.lock.Unlock()
		return err
	}
	if err := b.database.SetHeadBlockHash(blockHash); err != nil {
		b.lock.Unlock()
		return err
	}

	node := &BlockNode{
		BlockHeader: block.Header,
		BlockHash:   blockHash,
		PrevNode:    b.tip,
	}
	b.index[blockHash] = node
	b.tip = node
	b.state = newState

	b.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"hash":   blockHash,
		"height": block.Header.Height,
		"txs":    len(block.Transactions),
	}).Info("connected block to chain")

	b.notifyConnectBlock(block)

	return nil
}

// persistTouchedAccounts writes the accounts the block's transactions
// changed. Called with the chain lock held.
func (b *Blockchain) persistTouchedAccounts(state *State, block *primitives.Block) error {
	touched := make(map[[20]byte]struct{})
	for i := range block.Transactions {
		fromPkh, err := block.Transactions[i].FromPubkeyHash()
		if err != nil {
			return err
		}
		touched[fromPkh] = struct{}{}
		touched[block.Transactions[i].ToPubkeyHash] = struct{}{}
	}

	for pkh := range touched {
		account, err := state.GetAccountState(pkh)
		if err != nil {
			return err
		}
		if err := b.database.SetAccountState(pkh, account); err != nil {
			return err
		}
	}

	return nil
}
