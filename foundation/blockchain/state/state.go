// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/accounts"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the blockchain. The mutex serializes mining a block with
// replacing the chain so the mempool and accounts always follow the chain.
type State struct {
	mu sync.Mutex

	evHandler EventHandler

	genesis  genesis.Genesis
	chain    *database.Chain
	mempool  *mempool.Mempool
	accounts *accounts.Accounts

	Worker Worker
}

// New constructs a new blockchain for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Construct the chain with a fresh genesis block. The chain lives in
	// memory only.
	chain := database.NewChain(
		database.WithDifficulty(uint(cfg.Genesis.Difficulty)),
		database.WithEventHandler(ev),
	)

	// Create the State to provide support for managing the blockchain.
	state := State{
		evHandler: ev,

		genesis:  cfg.Genesis,
		chain:    chain,
		mempool:  mempool.New(),
		accounts: accounts.New(chain.Blocks()),

		Worker: noopWorker{},
	}

	// The Worker is set to a no-op here. The call to worker.Run will assign
	// itself and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	s.Worker.Shutdown()

	return nil
}

// =============================================================================

// noopWorker is used until a real worker registers itself.
type noopWorker struct{}

func (noopWorker) Shutdown()           {}
func (noopWorker) SignalStartMining()  {}
func (noopWorker) SignalCancelMining() {}
