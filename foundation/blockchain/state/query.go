package state

import (
	"errors"

	"github.com/ardanlabs/powchain/foundation/blockchain/accounts"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// ErrNotFound is returned when a queried value doesn't exist.
var ErrNotFound = errors.New("not found")

// =============================================================================

// QueryAccount returns a copy of the account information.
func (s *State) QueryAccount(id string) (accounts.Info, error) {
	info, exists := s.accounts.Query(id)
	if !exists {
		return accounts.Info{}, ErrNotFound
	}

	return info, nil
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlockByIndex returns the block at the specified index.
func (s *State) QueryBlockByIndex(index uint64) (database.Block, error) {
	if index == QueryLatest {
		return s.chain.Latest(), nil
	}

	block, err := s.chain.Block(index)
	if err != nil {
		return database.Block{}, ErrNotFound
	}

	return block, nil
}

// QueryBlocksByAccount returns the set of blocks holding a transaction for
// the account. If the account is empty, all blocks are returned.
func (s *State) QueryBlocksByAccount(id string) []database.Block {
	var out []database.Block

	for _, block := range s.chain.Blocks() {
		if id == "" {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Transactions {
			if tx.Sender == id || tx.Receiver == id {
				out = append(out, block)
				break
			}
		}
	}

	return out
}

// QueryBlocksByIndex returns the set of blocks based on the index range. If a
// value of QueryLatest is used for either bound, it's replaced by the index of
// the latest block.
func (s *State) QueryBlocksByIndex(from uint64, to uint64) []database.Block {
	latest := s.chain.Latest().Index
	if from == QueryLatest {
		from = latest
	}
	if to == QueryLatest || to > latest {
		to = latest
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.chain.Block(i)
		if err != nil {
			break
		}
		out = append(out, block)
	}

	return out
}
