package txpool

import "github.com/aurumchain/aurum/primitives"

// PoolNotifee is a transaction pool notifee.
type PoolNotifee interface {
	// TransactionAdmitted is called synchronously with each admission.
	TransactionAdmitted(tx *primitives.Transaction)

	// PoolUpdated is called once after each completed eviction sweep.
	PoolUpdated()
}

// RegisterNotifee registers a notifee for pool changes.
func (p *Pool) RegisterNotifee(n PoolNotifee) {
	p.notifeeLock.Lock()
	defer p.notifeeLock.Unlock()
	p.notifees = append(p.notifees, n)
}

// UnregisterNotifee unregisters a notifee for pool changes.
func (p *Pool) UnregisterNotifee(n PoolNotifee) {
	p.notifeeLock.Lock()
	defer p.notifeeLock.Unlock()
	for i, other := range p.notifees {
		if other == n {
			p.notifees = append(p.notifees[:i], p.notifees[i+1:]...)
		}
	}
}

func (p *Pool) notifyTransactionAdmitted(tx *primitives.Transaction) {
	p.notifeeLock.Lock()
	defer p.notifeeLock.Unlock()
	for _, n := range p.notifees {
		n.TransactionAdmitted(tx)
	}
}

func (p *Pool) notifyPoolUpdated() {
	p.notifeeLock.Lock()
	defer p.notifeeLock.Unlock()
	for _, n := range p.notifees {
		n.PoolUpdated()
	}
}
