package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
)

// miningOperations waits for start signals and mines one block per signal.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			return
		}
	}
}

// runMiningOperation mines a block from the mempool. A cancel signal received
// while mining cancels the search.
func (w *Worker) runMiningOperation() {
	if w.state.QueryMempoolLength() == 0 {
		return
	}

	// A cancel signal left over from a resolve that found nothing to stop
	// must not cut this block short.
	select {
	case <-w.cancelMining:
	default:
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-w.cancelMining:
			w.evHandler("worker: runMiningOperation: cancel requested")
			cancel()
		case <-ctx.Done():
		}
	}()

	start := time.Now()
	block, err := w.state.MineNewBlock(ctx)

	cancel()
	<-stopped

	switch {
	case err == nil:
		w.evHandler("worker: runMiningOperation: mined blk[%d]: hash[%s]: took[%v]", block.Index, block.Hash, time.Since(start))

	case errors.Is(err, state.ErrNoTransactions):
		w.evHandler("worker: runMiningOperation: no transactions to mine")

	case errors.Is(err, database.ErrMiningCancelled), errors.Is(err, database.ErrTipChanged):
		w.evHandler("worker: runMiningOperation: cancelled: %s", err)

	default:
		w.evHandler("worker: runMiningOperation: ERROR: %s", err)
	}

	// Keep going while there is work left.
	if w.state.QueryMempoolLength() > 0 && !w.isShutdown() {
		w.SignalStartMining()
	}
}
