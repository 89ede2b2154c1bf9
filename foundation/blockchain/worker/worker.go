// Package worker implements mining for the blockchain in the background.
package worker

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/state"
)

// Worker mines blocks in the background whenever the mempool has work.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan struct{}
	evHandler    state.EventHandler
}

// Run registers a worker with the state and starts the mining goroutine.
func Run(st *state.State, evHandler state.EventHandler) *Worker {
	w := Worker{
		state:        st,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan struct{}, 1),
		evHandler:    evHandler,
	}

	if w.evHandler == nil {
		w.evHandler = func(v string, args ...any) {}
	}

	st.Worker = &w

	// Return only once the mining goroutine is up.
	started := make(chan struct{})
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		close(started)
		w.miningOperations()
	}()
	<-started

	// Pick up anything that is already waiting to be mined.
	if st.QueryMempoolLength() > 0 {
		w.SignalStartMining()
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown stops mining and waits for the goroutine to exit.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	w.SignalCancelMining()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining asks for a block to be mined. Signals coalesce.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// SignalCancelMining cancels the block being mined, if any. The state package
// serializes mining with chain changes, so there is nothing to wait for here.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- struct{}{}:
	default:
	}
	w.evHandler("worker: SignalCancelMining: cancel signaled")
}

// =============================================================================

// isShutdown reports whether Shutdown has been called.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
