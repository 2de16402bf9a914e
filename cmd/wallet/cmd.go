package main

import (
	"encoding/hex"
	"strconv"

	"github.com/fatih/color"

	"github.com/aurumchain/aurum/wallet"
	"github.com/aurumchain/aurum/wallet/address"
)

// WalletCMD handles wallet commands.
type WalletCMD struct {
	w        *wallet.Wallet
	ExitChan chan struct{}
	out      color.Color
	errOut   color.Color
}

// NewWalletCMD creates a new WalletCMD for handling wallet commands.
func NewWalletCMD(nodeURL string, out color.Color, errOut color.Color) *WalletCMD {
	return &WalletCMD{
		w:        wallet.NewWallet(nodeURL),
		ExitChan: make(chan struct{}),
		out:      out,
		errOut:   errOut,
	}
}

func (w *WalletCMD) println(a ...interface{}) {
	_, _ = w.out.Println(a...)
}

func (w *WalletCMD) printf(f string, a ...interface{}) {
	_, _ = w.out.Printf(f, a...)
}

func (w *WalletCMD) errln(a ...interface{}) {
	_, _ = w.errOut.Println(a...)
}

func (w *WalletCMD) errf(f string, a ...interface{}) {
	_, _ = w.errOut.Printf(f, a...)
}

// Exit exits the wallet.
func (w *WalletCMD) Exit(args []string) {
	w.println("Exiting wallet...")
	w.ExitChan <- struct{}{}
}

// GetBalance gets the balance of an address.
func (w *WalletCMD) GetBalance(args []string) {
	if len(args) != 1 {
		w.errln("Usage: getbalance <address>")
		return
	}

	if !address.ValidateAddress(args[0]) {
		w.errf("Invalid address: %s\n", args[0])
		return
	}

	addr := address.Address(args[0])

	bal, err := w.w.GetBalance(addr)
	if err != nil {
		w.errf("Error getting balance: %s\n", err)
		return
	}

	w.printf("Balance of %s is %d\n", addr, bal)
}

// GetNonce gets the next expected nonce of an address.
func (w *WalletCMD) GetNonce(args []string) {
	if len(args) != 1 {
		w.errln("Usage: getnonce <address>")
		return
	}

	if !address.ValidateAddress(args[0]) {
		w.errf("Invalid address: %s\n", args[0])
		return
	}

	addr := address.Address(args[0])

	nonce, err := w.w.GetNonce(addr)
	if err != nil {
		w.errf("Error getting nonce: %s\n", err)
		return
	}

	w.printf("Next nonce of %s is %d\n", addr, nonce)
}

// SendToAddress sends money to a certain address.
func (w *WalletCMD) SendToAddress(args []string) {
	if len(args) != 4 {
		w.errln("Usage: sendtoaddress <amount> <fee> <fromaddress> <toaddress>")
		return
	}

	amount, err := strconv.Atoi(args[0])
	if err != nil {
		w.errf("Error parsing amount: %s\n", args[0])
		return
	}

	fee, err := strconv.Atoi(args[1])
	if err != nil {
		w.errf("Error parsing fee: %s\n", args[1])
		return
	}

	if !address.ValidateAddress(args[2]) {
		w.errf("Invalid address: %s\n", args[2])
		return
	}

	if !address.ValidateAddress(args[3]) {
		w.errf("Invalid address: %s\n", args[3])
		return
	}

	fromAddr := address.Address(args[2])
	toAddr := address.Address(args[3])

	w.printf("Sending %d AUR from %s to %s...\n", amount, fromAddr, toAddr)

	err = w.w.SendToAddress(fromAddr, toAddr, uint64(amount), uint64(fee))
	if err != nil {
		w.errf("Error sending: %s\n", err)
		return
	}

	w.printf("Sent %d AUR from %s to %s.\n", amount, fromAddr, toAddr)
}

// GetNewAddress gets a new address.
func (w *WalletCMD) GetNewAddress(args []string) {
	if len(args) != 0 {
		w.errln("Usage: getnewaddress")
		return
	}

	addr, err := w.w.GetNewAddress()
	if err != nil {
		w.errf("Error generating new address: %s\n", err)
		return
	}

	w.printf("Generated new address: %s\n", addr)
}

// ImportPrivKey imports a private key.
func (w *WalletCMD) ImportPrivKey(args []string) {
	if len(args) != 1 {
		w.errln("Usage: importprivkey <keyhex>")
		return
	}

	privBytes, err := hex.DecodeString(args[0])
	if err != nil {
		w.errf("Error parsing private key: %s\n", err)
		return
	}

	addr := w.w.ImportPrivKey(privBytes)

	w.printf("Imported new address: %s\n", addr)
}
