// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"slices"
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// Mempool represents a cache of transactions waiting to be mined, kept in
// the order they were received.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add validates the transaction and adds it to the end of the pool. The new
// number of transactions in the pool is returned.
func (mp *Mempool) Add(tx database.Tx) (int, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool), nil
}

// Delete removes the oldest transaction equal to the specified one.
func (mp *Mempool) Delete(tx database.Tx) bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	i := slices.Index(mp.pool, tx)
	if i == -1 {
		return false
	}

	mp.pool = slices.Delete(mp.pool, i, i+1)

	return true
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// PickBest returns the oldest transactions for the next block. A negative value
// for howMany returns every transaction.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if howMany < 0 || howMany > len(mp.pool) {
		howMany = len(mp.pool)
	}

	return slices.Clone(mp.pool[:howMany])
}

// Copy returns a copy of every transaction in the pool.
func (mp *Mempool) Copy() []database.Tx {
	return mp.PickBest(-1)
}
