// Package accounts maintains the net position of every party that has
// transacted on the blockchain.
package accounts

import (
	"sync"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// Info represents information stored for an individual account. Balance is
// the amount received minus the amount sent, which can be negative since
// the chain doesn't enforce funding.
type Info struct {
	Sent     int64 `json:"sent"`
	Received int64 `json:"received"`
	Balance  int64 `json:"balance"`
	Txs      uint  `json:"txs"`
}

// Accounts manages data related to accounts who have transacted on
// the blockchain.
type Accounts struct {
	info map[string]Info
	mu   sync.RWMutex
}

// New constructs accounts with the transactions from the specified blocks
// applied.
func New(blocks []database.Block) *Accounts {
	accts := Accounts{
		info: make(map[string]Info),
	}

	for _, block := range blocks {
		accts.ApplyBlock(block)
	}

	return &accts
}

// Reset clears all account information.
func (act *Accounts) Reset() {
	act.mu.Lock()
	defer act.mu.Unlock()

	act.info = make(map[string]Info)
}

// Replace rebuilds the accounts from the specified blocks. This is used when
// the chain is replaced by a longer chain.
func (act *Accounts) Replace(blocks []database.Block) {
	accounts := New(blocks)

	act.mu.Lock()
	defer act.mu.Unlock()

	act.info = accounts.info
}

// Copy makes a copy of the current information for all accounts.
func (act *Accounts) Copy() map[string]Info {
	act.mu.RLock()
	defer act.mu.RUnlock()

	accounts := make(map[string]Info, len(act.info))
	for id, info := range act.info {
		accounts[id] = info
	}
	return accounts
}

// Query returns the information for the specified account.
func (act *Accounts) Query(id string) (Info, bool) {
	act.mu.RLock()
	defer act.mu.RUnlock()

	info, exists := act.info[id]
	return info, exists
}

// ApplyBlock applies every transaction in the block.
func (act *Accounts) ApplyBlock(block database.Block) {
	for _, tx := range block.Transactions {
		act.ApplyTransaction(tx)
	}
}

// ApplyTransaction performs the business logic for applying a transaction
// to the accounts information.
func (act *Accounts) ApplyTransaction(tx database.Tx) {
	act.mu.Lock()
	defer act.mu.Unlock()

	from := act.info[tx.Sender]
	from.Sent += tx.Amount
	from.Balance -= tx.Amount
	from.Txs++
	act.info[tx.Sender] = from

	to := act.info[tx.Receiver]
	to.Received += tx.Amount
	to.Balance += tx.Amount
	to.Txs++
	act.info[tx.Receiver] = to
}
