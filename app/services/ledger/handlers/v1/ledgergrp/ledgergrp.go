// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/core/report"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger/balance"
	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/signature"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/ledger/wallet"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case e, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(e); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// Balance returns the statement for a single wallet. The mode query value
// selects between each transaction and the total or the total only, the
// policy query value decides what happens to unverified transactions.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := walletIndex(web.Param(r, "index"))
	if err != nil {
		return err
	}

	mode := report.TotalOnly
	if m := r.URL.Query().Get("mode"); m != "" {
		if mode, err = report.ParseMode(m); err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	policy := balance.IncludeAll
	if p := r.URL.Query().Get("policy"); p != "" {
		if policy, err = balance.ParsePolicy(p); err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	st, err := h.State.Balance(index, policy)
	if err != nil {
		return keyError(err)
	}

	resp := statement{
		Wallet:  index,
		Address: st.Address,
		Policy:  st.Policy.String(),
		Mode:    mode.String(),
		Start:   st.Start,
		Balance: st.Balance,
		Flagged: st.Flagged,
	}

	if mode == report.PerTransaction {
		resp.Entries = make([]entry, len(st.Entries))
		for i, e := range st.Entries {
			counterparty := e.Tx.RecipientKey
			if e.Direction == balance.Received {
				counterparty = e.Tx.SenderKey
			}

			var verified *bool
			if e.Checked {
				verified = &e.Verified
			}

			resp.Entries[i] = entry{
				Index:        e.Index,
				TimeStamp:    e.Tx.TimeStamp,
				Direction:    e.Direction.String(),
				Counterparty: h.NS.Lookup(counterparty),
				Amount:       e.Tx.Amount,
				Delta:        e.Delta,
				Running:      e.Running,
				Verified:     verified,
				Excluded:     e.Excluded,
			}
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the current balances for every wallet in the ledger.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	verified := r.URL.Query().Get("verified") == "true"

	sheet, err := h.State.Balances(verified)
	if err != nil {
		return keyError(err)
	}

	bals := make([]balanceInfo, 0, len(sheet))
	for address, value := range sheet {
		name := address
		if index, exists := h.NS.Index(address); exists {
			name = "wallet-" + strconv.Itoa(index)
		}
		bals = append(bals, balanceInfo{
			Address: address,
			Name:    name,
			Balance: value,
		})
	}
	sort.Slice(bals, func(i, j int) bool { return bals[i].Address < bals[j].Address })

	resp := balances{
		LatestBlock: h.State.QueryLatestBlock(),
		Verified:    verified,
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Block returns the block with the specified number.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := blockNumber(web.Param(r, "num"))
	if err != nil {
		return err
	}

	blk, err := h.State.QueryBlock(num)
	if err != nil {
		return blockError(err)
	}

	resp := block{
		Number: num,
		Header: blk.Header,
		Trans:  blk.Trans,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// VerifyBlock checks every transaction in a block with the key of the
// specified wallet.
func (h Handlers) VerifyBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := blockNumber(web.Param(r, "num"))
	if err != nil {
		return err
	}

	index, err := walletIndex(web.Param(r, "index"))
	if err != nil {
		return err
	}

	key, err := h.State.LoadWallet(index)
	if err != nil {
		return keyError(err)
	}

	results, err := h.State.VerifyBlock(num, key)
	if err != nil {
		return blockError(err)
	}

	resp := make([]verification, len(results))
	for i, res := range results {
		resp[i] = verification{
			Index:     res.Index,
			Hash:      res.Tx.Hash,
			Direction: res.Direction.String(),
			Sender:    h.NS.Lookup(res.Tx.SenderKey),
			Recipient: h.NS.Lookup(res.Tx.RecipientKey),
			Verified:  res.Verified,
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// VerifyTransaction checks a single posted transaction with the key of the
// specified wallet.
func (h Handlers) VerifyTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req verifyTx
	if err := web.Decode(r, &req); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	key, err := h.State.LoadWallet(*req.Wallet)
	if err != nil {
		return keyError(err)
	}

	verified, err := signature.Verify(*req.Tx, key)
	if err != nil {
		return keyError(err)
	}

	h.Log.Infow("verify tran", "traceid", web.GetTraceID(ctx), "wallet", *req.Wallet, "tx", req.Tx, "verified", verified)

	resp := verification{
		Hash:      req.Tx.Hash,
		Direction: balance.DirectionOf(key, *req.Tx).String(),
		Sender:    h.NS.Lookup(req.Tx.SenderKey),
		Recipient: h.NS.Lookup(req.Tx.RecipientKey),
		Verified:  verified,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

func walletIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, errs.NewTrustedf(http.StatusBadRequest, "invalid wallet index %q", s)
	}
	return index, nil
}

func blockNumber(s string) (uint64, error) {
	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil || num == 0 {
		return 0, errs.NewTrustedf(http.StatusBadRequest, "invalid block number %q", s)
	}
	return num, nil
}

// keyError converts the fatal key errors into client errors. Anything
// else is left for the error middleware to treat as unexpected.
func keyError(err error) error {
	switch {
	case errors.Is(err, wallet.ErrKeyNotFound):
		return errs.NewTrusted(err, http.StatusNotFound)
	case errors.Is(err, wallet.ErrKeyParse), errors.Is(err, signature.ErrInvalidKey):
		return errs.NewTrusted(err, http.StatusUnprocessableEntity)
	}
	return err
}

func blockError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return errs.NewTrusted(err, http.StatusNotFound)
	}
	return err
}
