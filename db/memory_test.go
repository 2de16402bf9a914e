package db_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/db"
	"github.com/aurumchain/aurum/primitives"
)

func TestStoreRetrieve(t *testing.T) {
	imdb := db.NewInMemoryDB()

	b := primitives.Block{
		Header: primitives.BlockHeader{
			PrevBlockHash: chainhash.Hash{1},
			MerkleRoot:    chainhash.Hash{2},
			Height:        3,
			Timestamp:     1600000000,
		},
	}

	err := imdb.SetBlock(b)
	if err != nil {
		t.Fatal(err)
	}

	b1, err := imdb.GetBlockForHash(b.Hash())
	if err != nil {
		t.Fatalf("could not find block hash %x", b.Hash())
	}

	if diff := deep.Equal(b, *b1); diff != nil {
		t.Fatal(diff)
	}

	_, err = imdb.GetBlockForHash(chainhash.Hash{})
	if err == nil {
		t.Fatalf("incorrectly found blockhash")
	}
}

func TestHeadBlock(t *testing.T) {
	imdb := db.NewInMemoryDB()

	if _, err := imdb.GetHeadBlockHash(); err == nil {
		t.Fatal("expected missing head block hash to error")
	}

	err := imdb.SetHeadBlockHash(chainhash.Hash{1})
	if err != nil {
		t.Fatal(err)
	}
	h, err := imdb.GetHeadBlockHash()
	if err != nil {
		t.Fatal(err)
	}

	if h[0] != 1 {
		t.Fatal("expected hash to match")
	}
}

func TestAccountStates(t *testing.T) {
	imdb := db.NewInMemoryDB()

	accounts := map[[20]byte]primitives.AccountState{
		{1}: {Balance: 100, Nonce: 2},
		{2}: {Balance: 5000, Nonce: 0},
	}

	for pkh, state := range accounts {
		if err := imdb.SetAccountState(pkh, state); err != nil {
			t.Fatal(err)
		}
	}

	stored, err := imdb.GetAccountStates()
	if err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(accounts, stored); diff != nil {
		t.Fatal(diff)
	}
}

func TestClose(t *testing.T) {
	imdb := db.NewInMemoryDB()

	err := imdb.Close()
	if err != nil {
		t.Fatal(err)
	}
}
