package blockchain

import "github.com/aurumchain/aurum/primitives"

// BlockchainNotifee is a blockchain notifee.
type BlockchainNotifee interface {
	ConnectBlock(*primitives.Block)
}

// RegisterNotifee registers a notifee for blockchain events.
func (b *Blockchain) RegisterNotifee(n BlockchainNotifee) {
	b.notifeeLock.Lock()
	defer b.notifeeLock.Unlock()
	b.notifees = append(b.notifees, n)
}

// UnregisterNotifee unregisters a notifee for blockchain events.
func (b *Blockchain) UnregisterNotifee(n BlockchainNotifee) {
	b.notifeeLock.Lock()
	defer b.notifeeLock.Unlock()
	for i, other := range b.notifees {
		if other == n {
			b.notifees = append(b.notifees[:i], b.notifees[i+1:]...)
		}
	}
}

func (b *Blockchain) notifyConnectBlock(block *primitives.Block) {
	b.notifeeLock.Lock()
	defer b.notifeeLock.Unlock()
	for _, n := range b.notifees {
		n.ConnectBlock(block)
	}
}
