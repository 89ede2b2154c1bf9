// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ardanlabs/powchain/business/web/errs"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// ResolveChain takes a candidate chain received from another node and
// replaces the local chain with it if it's longer and valid.
func (h Handlers) ResolveChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var blockData []database.BlockData
	if err := web.Decode(r, &blockData); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if len(blockData) == 0 {
		return errs.NewTrusted(errors.New("candidate chain is empty"), http.StatusBadRequest)
	}

	candidate := make([]database.Block, len(blockData))
	for i, bd := range blockData {
		candidate[i] = database.ToBlock(bd)
	}

	res := h.State.ResolveChain(candidate)

	h.Log.Infow("resolve chain", "traceid", v.TraceID, "outcome", res.Outcome, "local", res.LocalLength, "candidate", res.CandidateLength)

	resp := resolution{
		Outcome:         res.Outcome.String(),
		Adopted:         res.Adopted(),
		LocalLength:     res.LocalLength,
		CandidateLength: res.CandidateLength,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latestBlock := h.State.RetrieveLatestBlock()

	st := status{
		LatestBlockHash:  latestBlock.Hash,
		LatestBlockIndex: latestBlock.Index,
		Length:           len(h.State.RetrieveBlocks()),
		Difficulty:       h.State.RetrieveDifficulty(),
		Uncommitted:      h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// BlocksByIndex returns all the blocks based on the specified from/to values.
func (h Handlers) BlocksByIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from greater than to"), http.StatusBadRequest)
	}

	blocks := h.State.QueryBlocksByIndex(from, to)
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blockData := make([]database.BlockData, len(blocks))
	for i, block := range blocks {
		blockData[i] = database.NewBlockData(block)
	}

	return web.Respond(ctx, w, blockData, http.StatusOK)
}
