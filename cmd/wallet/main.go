package main

import (
	"flag"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/fatih/color"
)

func commandCompleter(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "getbalance", Description: "Gets the balance of an address"},
		{Text: "getnonce", Description: "Gets the next expected nonce of an address"},
		{Text: "sendtoaddress", Description: "Sends money from one address to another"},
		{Text: "exit", Description: "Exits the wallet"},
		{Text: "getnewaddress", Description: "Generates a new address"},
		{Text: "importprivkey", Description: "Imports a private key"},
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

var output = color.New(color.FgCyan)

var errOut = color.New(color.FgRed, color.Bold)

func exit(b *prompt.Buffer) {
	os.Exit(0)
}

func main() {
	nodeURL := flag.String("node", "http://localhost:11781", "URL of the node API to connect to")

	flag.Parse()

	walletCMD := NewWalletCMD(*nodeURL, *output, *errOut)

	var commandMap = map[string]func(args []string){
		"getbalance":    walletCMD.GetBalance,
		"getnonce":      walletCMD.GetNonce,
		"exit":          walletCMD.Exit,
		"sendtoaddress": walletCMD.SendToAddress,
		"getnewaddress": walletCMD.GetNewAddress,
		"importprivkey": walletCMD.ImportPrivKey,
	}

	go func() {
		<-walletCMD.ExitChan
		exit(nil)
	}()

	for {
		out := prompt.Input("> ", commandCompleter,
			prompt.OptionAddKeyBind(prompt.KeyBind{Key: prompt.ControlC, Fn: exit}),
			prompt.OptionAddKeyBind(prompt.KeyBind{Key: prompt.ControlD, Fn: exit}))

		args := strings.Split(out, " ")

		if len(args) == 0 {
			continue
		}

		comFunc, found := commandMap[args[0]]
		if !found {
			_, _ = errOut.Printf("invalid command: %s\n", args[0])
			continue
		}

		comFunc(args[1:])
	}
}
