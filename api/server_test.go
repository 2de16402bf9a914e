package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo"

	"github.com/aurumchain/aurum/blockchain"
	"github.com/aurumchain/aurum/db"
	"github.com/aurumchain/aurum/primitives"
	"github.com/aurumchain/aurum/txpool"
	"github.com/aurumchain/aurum/wallet/keystore"
)

type testServer struct {
	server *Server
	sender *keystore.Keypair
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	sender, err := keystore.GenerateRandomKeypair()
	if err != nil {
		t.Fatal(err)
	}

	chain, err := blockchain.NewBlockchain(db.NewInMemoryDB(), blockchain.Genesis{
		Timestamp: 1600000000,
		Allocations: map[[20]byte]uint64{
			sender.GetPubkeyHash(): 10000,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	pool := txpool.NewPool(chain)
	chain.RegisterNotifee(pool)

	return &testServer{
		server: NewServer(pool, chain),
		sender: sender,
	}
}

func (ts *testServer) signedTransfer(t *testing.T, nonce uint64) *primitives.Transaction {
	t.Helper()

	recipient, err := keystore.GenerateRandomKeypair()
	if err != nil {
		t.Fatal(err)
	}

	tx, err := ts.sender.Transfer(recipient.GetAddress(), 100, 1, nonce)
	if err != nil {
		t.Fatal(err)
	}

	return tx
}

func (ts *testServer) submit(t *testing.T, tx *primitives.Transaction) submitResponse {
	t.Helper()

	body := fmt.Sprintf(`{"transaction":"%s"}`, hex.EncodeToString(tx.Serialize()))

	req := httptest.NewRequest(http.MethodPost, "/tx", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)

	if err := ts.server.submitTransaction(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got: %d", rec.Code)
	}

	var out submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	return out
}

func TestSubmitTransaction(t *testing.T) {
	ts := newTestServer(t)

	tx := ts.signedTransfer(t, 0)
	out := ts.submit(t, tx)

	if !out.Admitted {
		t.Fatalf("expected transaction to be admitted, got reason: %s", out.Reason)
	}

	txHash, err := tx.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if out.Hash != txHash.String() {
		t.Fatalf("expected response hash %s, got: %s", txHash.String(), out.Hash)
	}
}

func TestSubmitTransactionRejection(t *testing.T) {
	ts := newTestServer(t)

	tx := ts.signedTransfer(t, 0)

	if out := ts.submit(t, tx); !out.Admitted {
		t.Fatalf("expected first submission to be admitted, got reason: %s", out.Reason)
	}

	out := ts.submit(t, tx)
	if out.Admitted {
		t.Fatal("expected duplicate submission to be rejected")
	}
	if out.Reason != "duplicate" {
		t.Fatalf("expected reason duplicate, got: %s", out.Reason)
	}
}

func TestSubmitTransactionRejectionReasons(t *testing.T) {
	ts := newTestServer(t)

	// wrong nonce
	out := ts.submit(t, ts.signedTransfer(t, 5))
	if out.Admitted || out.Reason != "nonce-mismatch" {
		t.Fatalf("expected nonce-mismatch, got: %+v", out)
	}

	// more than the sender holds
	recipient, err := keystore.GenerateRandomKeypair()
	if err != nil {
		t.Fatal(err)
	}
	tooMuch, err := ts.sender.Transfer(recipient.GetAddress(), 100000, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	out = ts.submit(t, tooMuch)
	if out.Admitted || out.Reason != "insufficient-balance" {
		t.Fatalf("expected insufficient-balance, got: %+v", out)
	}

	// tampered signature
	tampered := ts.signedTransfer(t, 0)
	tampered.Amount++
	out = ts.submit(t, tampered)
	if out.Admitted || out.Reason != "invalid-signature" {
		t.Fatalf("expected invalid-signature, got: %+v", out)
	}
}

func TestSubmitTransactionBadRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/tx", strings.NewReader(`{"transaction":"nothex"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)

	err := ts.server.submitTransaction(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an HTTP error, got: %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got: %d", httpErr.Code)
	}
}

func TestGetTransaction(t *testing.T) {
	ts := newTestServer(t)

	tx := ts.signedTransfer(t, 0)
	ts.submit(t, tx)

	txHash, err := tx.Hash()
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)
	c.SetParamNames("hash")
	c.SetParamValues(txHash.String())

	if err := ts.server.getTransaction(c); err != nil {
		t.Fatal(err)
	}

	var out transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	if out.Hash != txHash.String() {
		t.Fatalf("expected hash %s, got: %s", txHash.String(), out.Hash)
	}
	if out.Amount != tx.Amount || out.Nonce != tx.Nonce {
		t.Fatalf("expected transaction fields to round trip, got: %+v", out)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)
	c.SetParamNames("hash")
	c.SetParamValues(strings.Repeat("00", 32))

	err := ts.server.getTransaction(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an HTTP error, got: %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got: %d", httpErr.Code)
	}
}

func TestListTransactions(t *testing.T) {
	ts := newTestServer(t)

	ts.submit(t, ts.signedTransfer(t, 0))

	req := httptest.NewRequest(http.MethodGet, "/txs", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)

	if err := ts.server.listTransactions(c); err != nil {
		t.Fatal(err)
	}

	var out []transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 pooled transaction, got: %d", len(out))
	}
}

func TestGetAccount(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)
	c.SetParamNames("address")
	c.SetParamValues(string(ts.sender.GetAddress()))

	if err := ts.server.getAccount(c); err != nil {
		t.Fatal(err)
	}

	var out accountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	if out.Balance != 10000 {
		t.Fatalf("expected balance 10000, got: %d", out.Balance)
	}
	if out.Nonce != 0 {
		t.Fatalf("expected nonce 0, got: %d", out.Nonce)
	}
}

func TestGetAccountInvalidAddress(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)
	c.SetParamNames("address")
	c.SetParamValues("not-an-address")

	err := ts.server.getAccount(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected an HTTP error, got: %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got: %d", httpErr.Code)
	}
}

func TestGetChainHead(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/chain/head", nil)
	rec := httptest.NewRecorder()
	c := ts.server.echo.NewContext(req, rec)

	if err := ts.server.getChainHead(c); err != nil {
		t.Fatal(err)
	}

	var out chainHeadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}

	if out.Height != 0 {
		t.Fatalf("expected genesis height 0, got: %d", out.Height)
	}
	if out.Hash == "" {
		t.Fatal("expected a head block hash")
	}
}
