package primitives

// AccountState is the balance and next expected nonce of a single account.
// The zero value is the state of an account the chain has never seen.
type AccountState struct {
	Balance uint64
	Nonce   uint64
}

// Copy returns a copy of the account state.
func (a *AccountState) Copy() AccountState {
	return *a
}
