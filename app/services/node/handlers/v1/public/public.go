// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ardanlabs/powchain/business/web/errs"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
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
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	tx := ntx.toTx()

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "receiver", tx.Receiver, "amount", tx.Amount)
	if err := h.State.SubmitTransaction(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining asks the worker to mine a block from the mempool.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	if txs == nil {
		txs = []database.Tx{}
	}
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Chain returns the full chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveBlocks()
	return web.Respond(ctx, w, toBlockData(blocks), http.StatusOK)
}

// Validate reports whether the local chain passes validation and where it
// fails when it doesn't.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validation{
		Valid:  true,
		Length: len(h.State.RetrieveBlocks()),
	}

	if err := h.State.ValidateChain(); err != nil {
		ve := database.GetValidationError(err)
		if ve == nil {
			return err
		}

		resp.Valid = false
		resp.Index = &ve.Index
		resp.Kind = ve.Kind.String()
		resp.Error = ve.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlockByIndex returns the block at the specified index. The value latest
// can be used to get the tip of the chain.
func (h Handlers) BlockByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index := state.QueryLatest

	if indexStr := web.Param(r, "index"); indexStr != "latest" {
		var err error
		index, err = strconv.ParseUint(indexStr, 10, 64)
		if err != nil {
			return errs.NewTrusted(fmt.Errorf("invalid block index %q", indexStr), http.StatusBadRequest)
		}
	}

	block, err := h.State.QueryBlockByIndex(index)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return errs.NewTrusted(fmt.Errorf("block %d not found", index), http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, database.NewBlockData(block), http.StatusOK)
}

// BlocksByAccount returns all the blocks holding a transaction for the
// specified account, or every block when no account is provided.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.QueryBlocksByAccount(web.Param(r, "account"))
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, toBlockData(blocks), http.StatusOK)
}

// Accounts returns the net amounts for all accounts, or the specified one.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var acts []info

	switch account := web.Param(r, "account"); account {
	case "":
		for id, blkInfo := range h.State.RetrieveAccounts() {
			acts = append(acts, toInfo(id, blkInfo))
		}
		sort.Slice(acts, func(i, j int) bool { return acts[i].Account < acts[j].Account })

	default:
		blkInfo, err := h.State.QueryAccount(account)
		if err != nil {
			if errors.Is(err, state.ErrNotFound) {
				return errs.NewTrusted(fmt.Errorf("account %q not found", account), http.StatusNotFound)
			}
			return err
		}
		acts = append(acts, toInfo(account, blkInfo))
	}

	if acts == nil {
		acts = []info{}
	}

	ai := actInfo{
		LatestBlock: h.State.RetrieveLatestBlock().Hash,
		Uncommitted: h.State.QueryMempoolLength(),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}
