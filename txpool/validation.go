package txpool

import (
	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/primitives"
)

// Rejection causes returned by Submit. None of these is fatal; a rejected
// transaction simply never enters the pool.
var (
	// ErrDuplicateTransaction means the pool already holds a transaction
	// with the same hash.
	ErrDuplicateTransaction = errors.New("transaction already in pool")

	// ErrInvalidSignature means the signature does not authenticate the
	// transaction under the sender's pubkey.
	ErrInvalidSignature = errors.New("transaction signature is invalid")

	// ErrSelfPayment means the sender and the recipient are the same
	// account.
	ErrSelfPayment = errors.New("transaction pays the sender")

	// ErrInsufficientBalance means the sender cannot cover amount plus fee.
	ErrInsufficientBalance = errors.New("sender balance does not cover amount and fee")

	// ErrNonceMismatch means the transaction nonce is not the account's next
	// expected nonce.
	ErrNonceMismatch = errors.New("transaction nonce does not match account nonce")

	// ErrSenderAlreadyPending means the sender already has a transaction in
	// the pool.
	ErrSenderAlreadyPending = errors.New("sender already has a pending transaction")
)

// validateStateless runs the checks that do not depend on chain state:
// signature validity and the self-payment rule.
func (p *Pool) validateStateless(tx *primitives.Transaction) error {
	if err := tx.VerifySignature(); err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}

	fromPkh, err := tx.FromPubkeyHash()
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}

	if fromPkh == tx.ToPubkeyHash {
		return ErrSelfPayment
	}

	return nil
}

// checkSpendable runs the state-dependent checks: the sender must cover
// amount plus fee and the nonce must match the account's next expected
// nonce.
func checkSpendable(tx *primitives.Transaction, account primitives.AccountState) error {
	total := tx.Amount + tx.Fee
	if total < tx.Amount {
		// amount + fee overflowed, which no balance can cover
		return ErrInsufficientBalance
	}

	if account.Balance < total {
		return ErrInsufficientBalance
	}

	if account.Nonce != tx.Nonce {
		return ErrNonceMismatch
	}

	return nil
}
