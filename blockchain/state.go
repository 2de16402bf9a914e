package blockchain

import (
	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/primitives"
	"github.com/aurumchain/aurum/txpool"
)

// State is the set of account states at a certain chain tip. The live state
// is guarded by the blockchain lock; copies handed out as snapshots are
// read-only.
type State struct {
	accounts map[[20]byte]primitives.AccountState
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		accounts: make(map[[20]byte]primitives.AccountState),
	}
}

var _ txpool.AccountReader = (*State)(nil)

// GetAccountState gets the balance and nonce of an account. Accounts the
// chain has never seen have a balance and nonce of zero.
func (s *State) GetAccountState(pkh [20]byte) (primitives.AccountState, error) {
	return s.accounts[pkh], nil
}

// SetAccountState sets the state of a single account.
func (s *State) SetAccountState(pkh [20]byte, account primitives.AccountState) {
	s.accounts[pkh] = account
}

// Copy returns a deep copy of the state.
func (s *State) Copy() *State {
	accounts := make(map[[20]byte]primitives.AccountState, len(s.accounts))
	for pkh, account := range s.accounts {
		accounts[pkh] = account
	}
	return &State{accounts: accounts}
}

// ApplyTransaction applies a transfer to the state, debiting the sender and
// crediting the recipient. Fees are burned; there is no block producer
// reward in this chain.
func (s *State) ApplyTransaction(tx *primitives.Transaction) error {
	fromPkh, err := tx.FromPubkeyHash()
	if err != nil {
		return err
	}

	total := tx.Amount + tx.Fee
	if total < tx.Amount {
		return errors.New("transaction amount and fee overflow")
	}

	sender := s.accounts[fromPkh]
	if sender.Balance < total {
		return errors.New("sender balance does not cover amount and fee")
	}
	if sender.Nonce != tx.Nonce {
		return errors.Errorf("expected nonce %d, got: %d", sender.Nonce, tx.Nonce)
	}

	sender.Balance -= total
	sender.Nonce++
	s.accounts[fromPkh] = sender

	recipient := s.accounts[tx.ToPubkeyHash]
	recipient.Balance += tx.Amount
	s.accounts[tx.ToPubkeyHash] = recipient

	return nil
}
