package txpool

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
)

// MaxTransactionsListed is the default maximum number of transactions
// returned by GetTransactions.
const MaxTransactionsListed = 5000

// AccountReader provides read access to account balances and nonces.
type AccountReader interface {
	GetAccountState(pkh [20]byte) (primitives.AccountState, error)
}

// Ledger is the chain state the pool validates transactions against. A
// snapshot is a view that does not change underneath a sweep.
type Ledger interface {
	AccountReader
	StateSnapshot() (AccountReader, error)
}

// Pool keeps track of pending transactions that have passed admission and
// are waiting to be included in a block. Each sender may have at most one
// transaction pending at a time.
type Pool struct {
	ledger Ledger

	poolLock      *sync.RWMutex
	transactions  map[chainhash.Hash]*primitives.Transaction
	order         []chainhash.Hash
	activeSenders map[[33]byte]struct{}

	notifees    []PoolNotifee
	notifeeLock *sync.Mutex
}

// NewPool creates a new transaction pool validating against the given
// ledger.
func NewPool(ledger Ledger) *Pool {
	return &Pool{
		ledger:        ledger,
		poolLock:      new(sync.RWMutex),
		transactions:  make(map[chainhash.Hash]*primitives.Transaction),
		activeSenders: make(map[[33]byte]struct{}),
		notifeeLock:   new(sync.Mutex),
	}
}

// Submit validates a transaction and admits it to the pool. A nil error
// means the transaction was admitted; every rejection cause maps to one of
// the sentinel errors in this package.
func (p *Pool) Submit(tx *primitives.Transaction) error {
	txHash, err := tx.Hash()
	if err != nil {
		return err
	}

	// Checks against external state happen without the pool lock so a slow
	// ledger read never blocks unrelated submissions.
	p.poolLock.RLock()
	_, found := p.transactions[txHash]
	p.poolLock.RUnlock()
	if found {
		logrus.WithField("hash", txHash).Debug("transaction already exists")
		return ErrDuplicateTransaction
	}

	if err := p.validateStateless(tx); err != nil {
		return err
	}

	fromPkh, err := tx.FromPubkeyHash()
	if err != nil {
		return err
	}

	account, err := p.ledger.GetAccountState(fromPkh)
	if err != nil {
		// a failed validation is a rejection, never an admission
		return err
	}

	if err := checkSpendable(tx, account); err != nil {
		return err
	}

	// The world may have changed while we were validating, so re-check the
	// duplicate and sender conflicts atomically with the insertion.
	p.poolLock.Lock()
	if _, found := p.transactions[txHash]; found {
		p.poolLock.Unlock()
		return ErrDuplicateTransaction
	}
	if _, active := p.activeSenders[tx.FromPubkey]; active {
		p.poolLock.Unlock()
		return ErrSenderAlreadyPending
	}
	p.transactions[txHash] = tx
	p.order = append(p.order, txHash)
	p.activeSenders[tx.FromPubkey] = struct{}{}
	p.poolLock.Unlock()

	logrus.WithField("hash", txHash).Info("admitted new transaction to pool")

	p.notifyTransactionAdmitted(tx)

	return nil
}

// Get gets a transaction from the pool by its hash.
func (p *Pool) Get(h chainhash.Hash) (*primitives.Transaction, bool) {
	p.poolLock.RLock()
	defer p.poolLock.RUnlock()
	tx, found := p.transactions[h]
	return tx, found
}

// GetTransactions gets up to maxTransactions pooled transactions in
// admission order. Passing a non-positive maximum applies the default
// limit.
func (p *Pool) GetTransactions(maxTransactions int) []*primitives.Transaction {
	if maxTransactions <= 0 {
		maxTransactions = MaxTransactionsListed
	}

	p.poolLock.RLock()
	defer p.poolLock.RUnlock()

	transactions := make([]*primitives.Transaction, 0, len(p.order))
	for _, txHash := range p.order {
		if len(transactions) >= maxTransactions {
			break
		}
		transactions = append(transactions, p.transactions[txHash])
	}

	return transactions
}

// Size gets the number of transactions in the pool.
func (p *Pool) Size() int {
	p.poolLock.RLock()
	defer p.poolLock.RUnlock()
	return len(p.transactions)
}

// ConnectBlock is part of the blockchain notifee. A new chain head may have
// invalidated pooled transactions, so sweep the pool against the new state.
func (p *Pool) ConnectBlock(_ *primitives.Block) {
	p.removeInvalidTransactions()
}

type sweepEntry struct {
	hash chainhash.Hash
	tx   *primitives.Transaction
}

// removeInvalidTransactions re-checks every pooled transaction against a
// single state snapshot and evicts the ones that no longer apply. All
// re-checks resolve before any removal happens, and PoolUpdated fires once
// per sweep.
func (p *Pool) removeInvalidTransactions() {
	snapshot, err := p.ledger.StateSnapshot()
	if err != nil {
		logrus.WithError(err).Warn("could not snapshot chain state for pool sweep")
		return
	}

	p.poolLock.RLock()
	entries := make([]sweepEntry, 0, len(p.order))
	for _, txHash := range p.order {
		entries = append(entries, sweepEntry{hash: txHash, tx: p.transactions[txHash]})
	}
	p.poolLock.RUnlock()

	stillValid := make([]bool, len(entries))

	var wg sync.WaitGroup
	wg.Add(len(entries))
	for i := range entries {
		go func(i int) {
			defer wg.Done()
			stillValid[i] = p.recheckTransaction(entries[i].tx, snapshot)
		}(i)
	}
	wg.Wait()

	removed := make(map[chainhash.Hash]struct{})

	p.poolLock.Lock()
	for i, entry := range entries {
		if stillValid[i] {
			continue
		}
		if _, found := p.transactions[entry.hash]; !found {
			continue
		}
		delete(p.transactions, entry.hash)
		delete(p.activeSenders, entry.tx.FromPubkey)
		removed[entry.hash] = struct{}{}
	}
	if len(removed) > 0 {
		newOrder := make([]chainhash.Hash, 0, len(p.order)-len(removed))
		for _, txHash := range p.order {
			if _, wasRemoved := removed[txHash]; !wasRemoved {
				newOrder = append(newOrder, txHash)
			}
		}
		p.order = newOrder
	}
	p.poolLock.Unlock()

	if len(removed) > 0 {
		logrus.WithField("count", len(removed)).Debug("evicted invalidated transactions from pool")
	}

	p.notifyPoolUpdated()
}

// recheckTransaction re-runs only the state-dependent checks. Signature and
// self-payment validity cannot change after admission. A failed state read
// keeps the transaction pooled until the next sweep can decide.
func (p *Pool) recheckTransaction(tx *primitives.Transaction, snapshot AccountReader) bool {
	fromPkh, err := tx.FromPubkeyHash()
	if err != nil {
		return true
	}

	account, err := snapshot.GetAccountState(fromPkh)
	if err != nil {
		logrus.WithError(err).Debug("could not read account state during pool sweep")
		return true
	}

	return checkSpendable(tx, account) == nil
}
