package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are not enough transactions.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock attempts to create a new block with a proper hash that can become
// the next block in the chain. A call to ResolveChain waits for this to finish,
// so cancel the context to cut mining short.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	// Are there enough transactions in the pool.
	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// Pick the best transactions from the mempool.
	trans := s.mempool.PickBest(int(s.genesis.TransPerBlock))

	s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]", len(trans))

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block, err := s.chain.AddBlock(ctx, s.chain.NextBlock(trans), s.chain.Difficulty())
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	s.updateLocalState(block)

	return block, nil
}

// =============================================================================

// updateLocalState takes the mined block and removes its transactions from
// the mempool and applies them to the accounts.
func (s *State) updateLocalState(block database.Block) {
	s.evHandler("state: updateLocalState: update accounts and remove from mempool")

	for _, tx := range block.Transactions {
		s.evHandler("state: updateLocalState: tx[%s] update and remove", tx)

		s.mempool.Delete(tx)
		s.accounts.ApplyTransaction(tx)
	}
}
