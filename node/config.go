package node

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Options are the options for the node module.
type Options struct {
	DataDirectory  string            `yaml:"data_directory" cli:"datadir"`
	APIAddress     string            `yaml:"api_address" cli:"apiaddr"`
	MemoryDatabase bool              `yaml:"memory_database" cli:"memdb"`
	SentryDSN      string            `yaml:"sentry_dsn" cli:"sentrydsn"`
	GenesisTime    uint64            `yaml:"genesis_time" cli:"genesistime"`
	Premine        map[string]uint64 `yaml:"premine"`
}

// DefaultDataDirectory is used when no data directory is configured.
const DefaultDataDirectory = "~/.aurum"

// DefaultAPIAddress is used when no API listen address is configured.
const DefaultAPIAddress = ":11781"

// ResolveDataDirectory expands and creates the configured data directory.
func (o *Options) ResolveDataDirectory() (string, error) {
	dataDir := o.DataDirectory
	if dataDir == "" {
		dataDir = DefaultDataDirectory
	}

	dir, err := homedir.Expand(dataDir)
	if err != nil {
		return "", errors.Wrap(err, "could not expand data directory")
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", errors.Wrap(err, "could not create data directory")
	}

	return dir, nil
}
