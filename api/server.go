package api

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/aurumchain/aurum/blockchain"
	"github.com/aurumchain/aurum/chainhash"
	"github.com/aurumchain/aurum/primitives"
	"github.com/aurumchain/aurum/txpool"
	"github.com/aurumchain/aurum/wallet/address"
)

// Server exposes the node's query surface over HTTP: transaction
// submission, pool lookup and listing, account state, and the chain head.
type Server struct {
	pool  *txpool.Pool
	chain *blockchain.Blockchain
	echo  *echo.Echo
}

// NewServer creates a new API server for the given pool and chain.
func NewServer(pool *txpool.Pool, chain *blockchain.Blockchain) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		pool:  pool,
		chain: chain,
		echo:  e,
	}

	e.POST("/tx", s.submitTransaction)
	e.GET("/tx/:hash", s.getTransaction)
	e.GET("/txs", s.listTransactions)
	e.GET("/account/:address", s.getAccount)
	e.GET("/chain/head", s.getChainHead)

	return s
}

// Start starts the API server on the given address.
func (s *Server) Start(listenAddress string) error {
	logger.WithField("address", listenAddress).Info("starting API server")
	return s.echo.Start(listenAddress)
}

// Close shuts the API server down.
func (s *Server) Close() error {
	return s.echo.Close()
}

type submitRequest struct {
	Transaction string `json:"transaction"`
}

type submitResponse struct {
	Admitted bool   `json:"admitted"`
	Hash     string `json:"hash,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type transactionResponse struct {
	Hash       string `json:"hash"`
	FromPubkey string `json:"from_pubkey"`
	To         string `json:"to"`
	Amount     uint64 `json:"amount"`
	Fee        uint64 `json:"fee"`
	Nonce      uint64 `json:"nonce"`
	Signature  string `json:"signature"`
}

type accountResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

type chainHeadResponse struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

func transactionToResponse(tx *primitives.Transaction) (*transactionResponse, error) {
	txHash, err := tx.Hash()
	if err != nil {
		return nil, err
	}

	return &transactionResponse{
		Hash:       txHash.String(),
		FromPubkey: hex.EncodeToString(tx.FromPubkey[:]),
		To:         string(address.FromPubkeyHash(tx.ToPubkeyHash)),
		Amount:     tx.Amount,
		Fee:        tx.Fee,
		Nonce:      tx.Nonce,
		Signature:  hex.EncodeToString(tx.Signature[:]),
	}, nil
}

// rejectionReason maps an admission error to a stable reason string for
// consumers and metrics.
func rejectionReason(err error) string {
	switch errors.Cause(err) {
	case txpool.ErrDuplicateTransaction:
		return "duplicate"
	case txpool.ErrInvalidSignature:
		return "invalid-signature"
	case txpool.ErrSelfPayment:
		return "self-payment"
	case txpool.ErrInsufficientBalance:
		return "insufficient-balance"
	case txpool.ErrNonceMismatch:
		return "nonce-mismatch"
	case txpool.ErrSenderAlreadyPending:
		return "sender-busy"
	default:
		return "ledger-unavailable"
	}
}

func (s *Server) submitTransaction(c echo.Context) error {
	req := new(submitRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not parse request body")
	}

	txBytes, err := hex.DecodeString(req.Transaction)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction is not valid hex")
	}

	tx := new(primitives.Transaction)
	if err := tx.Deserialize(bytes.NewReader(txBytes)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not deserialize transaction")
	}

	txHash, err := tx.Hash()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not hash transaction")
	}

	if err := s.pool.Submit(tx); err != nil {
		// rejections are ordinary negative results, not server errors
		logger.WithError(err).WithField("hash", txHash).Debug("rejected submitted transaction")
		return c.JSON(http.StatusOK, submitResponse{
			Admitted: false,
			Hash:     txHash.String(),
			Reason:   rejectionReason(err),
		})
	}

	return c.JSON(http.StatusOK, submitResponse{
		Admitted: true,
		Hash:     txHash.String(),
	})
}

func (s *Server) getTransaction(c echo.Context) error {
	txHash, err := chainhash.NewHashFromStr(c.Param("hash"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "transaction hash is not valid hex")
	}

	tx, found := s.pool.Get(*txHash)
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "transaction is not in the pool")
	}

	out, err := transactionToResponse(tx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, out)
}

func (s *Server) listTransactions(c echo.Context) error {
	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit is not a number")
		}
		limit = parsed
	}

	txs := s.pool.GetTransactions(limit)

	out := make([]*transactionResponse, len(txs))
	for i, tx := range txs {
		txOut, err := transactionToResponse(tx)
		if err != nil {
			return err
		}
		out[i] = txOut
	}

	return c.JSON(http.StatusOK, out)
}

func (s *Server) getAccount(c echo.Context) error {
	addr := address.Address(c.Param("address"))

	pkh, err := addr.ToPubkeyHash()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please provide a valid address")
	}

	account, err := s.chain.GetAccountState(pkh)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accountResponse{
		Address: string(addr),
		Balance: account.Balance,
		Nonce:   account.Nonce,
	})
}

func (s *Server) getChainHead(c echo.Context) error {
	tip := s.chain.Tip()

	return c.JSON(http.StatusOK, chainHeadResponse{
		Hash:   tip.BlockHash.String(),
		Height: tip.Height,
	})
}
