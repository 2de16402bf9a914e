package node

import (
	"path/filepath"

	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/aurumchain/aurum/api"
	"github.com/aurumchain/aurum/blockchain"
	"github.com/aurumchain/aurum/db"
	"github.com/aurumchain/aurum/txpool"
	"github.com/aurumchain/aurum/wallet/address"
)

const nodeVersion = "0.1.0"

// NodeApp runs the node: chain storage, the transaction pool, and the HTTP
// API consumers submit and query through.
type NodeApp struct {
	Config Options

	database db.Database
	chain    *blockchain.Blockchain
	pool     *txpool.Pool
	server   *api.Server
}

// NewNodeApp creates a new node app given a config.
func NewNodeApp(o Options) (*NodeApp, error) {
	a := &NodeApp{Config: o}

	if o.MemoryDatabase {
		a.database = db.NewInMemoryDB()
	} else {
		dir, err := o.ResolveDataDirectory()
		if err != nil {
			return nil, err
		}

		badgerDB, err := db.NewBadgerDB(filepath.Join(dir, "chain"))
		if err != nil {
			return nil, err
		}
		a.database = badgerDB
	}

	genesis, err := genesisFromOptions(o)
	if err != nil {
		return nil, err
	}

	chain, err := blockchain.NewBlockchain(a.database, *genesis)
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize blockchain")
	}
	a.chain = chain

	a.pool = txpool.NewPool(chain)
	chain.RegisterNotifee(a.pool)

	a.server = api.NewServer(a.pool, a.chain)

	return a, nil
}

func genesisFromOptions(o Options) (*blockchain.Genesis, error) {
	allocations := make(map[[20]byte]uint64, len(o.Premine))
	for addrString, balance := range o.Premine {
		pkh, err := address.Address(addrString).ToPubkeyHash()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid premine address: %s", addrString)
		}
		allocations[pkh] = balance
	}

	return &blockchain.Genesis{
		Timestamp:   o.GenesisTime,
		Allocations: allocations,
	}, nil
}

// Chain gets the app's blockchain.
func (a *NodeApp) Chain() *blockchain.Blockchain {
	return a.chain
}

// Pool gets the app's transaction pool.
func (a *NodeApp) Pool() *txpool.Pool {
	return a.pool
}

// Run runs the node app.
func (a *NodeApp) Run() error {
	logger.Info("starting node version ", nodeVersion)

	apiAddress := a.Config.APIAddress
	if apiAddress == "" {
		apiAddress = DefaultAPIAddress
	}

	return a.server.Start(apiAddress)
}

// Exit shuts the node app down.
func (a *NodeApp) Exit() {
	if err := a.server.Close(); err != nil {
		logger.WithError(err).Warn("could not close API server")
	}
	if err := a.database.Close(); err != nil {
		logger.WithError(err).Warn("could not close database")
	}
}
