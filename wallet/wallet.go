package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/wallet/address"
	"github.com/aurumchain/aurum/wallet/keystore"
)

// Wallet keeps track of keys for addresses and submits transfers to a node
// over its HTTP API.
type Wallet struct {
	NodeURL  string
	Client   *http.Client
	Keystore map[address.Address]*keystore.Keypair
}

// NewWallet creates a new wallet talking to the node at the given URL.
func NewWallet(nodeURL string) *Wallet {
	return &Wallet{
		NodeURL:  nodeURL,
		Client:   http.DefaultClient,
		Keystore: make(map[address.Address]*keystore.Keypair),
	}
}

type accountInfo struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

type submitRequest struct {
	Transaction string `json:"transaction"`
}

type submitResult struct {
	Admitted bool   `json:"admitted"`
	Hash     string `json:"hash"`
	Reason   string `json:"reason"`
}

func (w *Wallet) getAccount(of address.Address) (*accountInfo, error) {
	resp, err := w.Client.Get(fmt.Sprintf("%s/account/%s", w.NodeURL, of))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("node returned status %d for account request", resp.StatusCode)
	}

	account := new(accountInfo)
	if err := json.NewDecoder(resp.Body).Decode(account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetBalance gets the balance of an address.
func (w *Wallet) GetBalance(of address.Address) (uint64, error) {
	account, err := w.getAccount(of)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// GetNonce gets the next expected nonce of an address.
func (w *Wallet) GetNonce(of address.Address) (uint64, error) {
	account, err := w.getAccount(of)
	if err != nil {
		return 0, err
	}
	return account.Nonce, nil
}

// SendToAddress sends money to the specified address from the specified
// address. The sending address must have a key in the keystore.
func (w *Wallet) SendToAddress(from address.Address, to address.Address, amount uint64, fee uint64) error {
	key, found := w.Keystore[from]
	if !found {
		return errors.Errorf("could not find key for address: %s", from)
	}

	nonce, err := w.GetNonce(from)
	if err != nil {
		return errors.Wrap(err, "could not get nonce for sending address")
	}

	tx, err := key.Transfer(to, amount, fee, nonce)
	if err != nil {
		return err
	}

	body, err := json.Marshal(submitRequest{
		Transaction: hex.EncodeToString(tx.Serialize()),
	})
	if err != nil {
		return err
	}

	resp, err := w.Client.Post(w.NodeURL+"/tx", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("node returned status %d for submission", resp.StatusCode)
	}

	result := new(submitResult)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return err
	}

	if !result.Admitted {
		return errors.Errorf("node rejected transaction: %s", result.Reason)
	}

	return nil
}

// GetNewAddress generates a new keypair and adds it to the keystore.
func (w *Wallet) GetNewAddress() (address.Address, error) {
	key, err := keystore.GenerateRandomKeypair()
	if err != nil {
		return "", err
	}

	addr := key.GetAddress()
	w.Keystore[addr] = key

	return addr, nil
}

// ImportPrivKey imports a private key into the keystore and returns its
// address.
func (w *Wallet) ImportPrivKey(privBytes []byte) address.Address {
	key := keystore.KeypairFromBytes(privBytes)

	addr := key.GetAddress()
	w.Keystore[addr] = key

	return addr
}
