// Package database maintains the blockchain in memory. It provides the block
// and transaction model along with mining, validation and conflict
// resolution against a candidate chain.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/digest"
)

// DefaultDifficulty is the number of leading zeros a mined block needs when
// no difficulty is configured.
const DefaultDifficulty uint = 4

// ErrTipChanged is returned from AddBlock when the chain was replaced while
// the new block was being mined against the old tip.
var ErrTipChanged = errors.New("chain tip changed while mining")

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Option changes the configuration of a chain.
type Option func(c *Chain)

// WithDifficulty sets the difficulty recorded for the chain.
func WithDifficulty(difficulty uint) Option {
	return func(c *Chain) {
		c.difficulty = difficulty
	}
}

// WithEventHandler sets the handler that receives processing events.
func WithEventHandler(ev EventHandler) Option {
	return func(c *Chain) {
		if ev != nil {
			c.evHandler = ev
		}
	}
}

// WithClock sets the function used to time stamp the genesis block and
// blocks built by NextBlock.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		if now != nil {
			c.now = now
		}
	}
}

// =============================================================================

// Chain is an ordered set of blocks starting with a genesis block. Adding a
// block and resolving conflicts both read and then replace the chain, so
// they hold the write lock for those steps.
type Chain struct {
	mu         sync.RWMutex
	blocks     []Block
	difficulty uint
	evHandler  EventHandler
	now        func() time.Time
}

// NewChain constructs a chain holding only a genesis block.
func NewChain(options ...Option) *Chain {
	c := Chain{
		difficulty: DefaultDifficulty,
		evHandler:  func(v string, args ...any) {},
		now:        time.Now,
	}

	for _, option := range options {
		option(&c)
	}

	c.blocks = []Block{Genesis(c.now())}

	return &c
}

// Genesis constructs the first block of a chain. It holds no transactions,
// references the zero hash and is never mined.
func Genesis(t time.Time) Block {
	return NewBlock(0, Timestamp(t), []Tx{}, digest.ZeroHash, 0)
}

// Difficulty returns the difficulty recorded for the chain.
func (c *Chain) Difficulty() uint {
	return c.difficulty
}

// Length returns the number of blocks in the chain including genesis.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Latest returns a copy of the block at the tip of the chain.
func (c *Chain) Latest() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1].Clone()
}

// Block returns a copy of the block at the specified index.
func (c *Chain) Block(index uint64) (Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index >= uint64(len(c.blocks)) {
		return Block{}, fmt.Errorf("block %d does not exist", index)
	}

	return c.blocks[index].Clone(), nil
}

// Blocks returns a copy of every block in the chain.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneBlocks(c.blocks)
}

// NextBlock constructs an unmined block holding the transactions, numbered
// to follow the current tip.
func (c *Chain) NextBlock(txs []Tx) Block {
	c.mu.RLock()
	index := uint64(len(c.blocks))
	tip := c.blocks[len(c.blocks)-1].Hash
	c.mu.RUnlock()

	return NewBlock(index, Timestamp(c.now()), txs, tip, 0)
}

// AddBlock links a copy of the block to the tip of the chain, mines it at the
// specified difficulty and appends it. The mined block is returned and the
// value provided by the caller is left untouched. The search can be cancelled
// through the context, in which case nothing is appended.
func (c *Chain) AddBlock(ctx context.Context, block Block, difficulty uint) (Block, error) {
	c.mu.RLock()
	tip := c.blocks[len(c.blocks)-1].Hash
	c.mu.RUnlock()

	nb := block.Clone()
	nb.PrevHash = tip

	c.evHandler("database: AddBlock: blk[%d]: prevBlk[%s]: perform POW", nb.Index, tip)

	// Mining happens outside the lock so readers are not blocked.
	if err := nb.ProofOfWork(ctx, difficulty, WithEvents(c.evHandler)); err != nil {
		return Block{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The chain could have been replaced while we were mining.
	if c.blocks[len(c.blocks)-1].Hash != tip {
		return Block{}, ErrTipChanged
	}

	c.blocks = append(c.blocks, nb)

	c.evHandler("database: AddBlock: blk[%d]: appended: length[%d]", nb.Index, len(c.blocks))

	return nb.Clone(), nil
}

// Validate checks every block after genesis for hash integrity and linkage.
// The returned error is a *ValidationError describing the first failure.
func (c *Chain) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return validateBlocks(c.blocks, c.evHandler)
}

// IsChainValid reports whether the chain passes Validate.
func (c *Chain) IsChainValid() bool {
	return c.Validate() == nil
}

// ResolveConflicts replaces the chain with the candidate if the candidate
// is strictly longer and passes the same validation as the local chain. Only
// length counts, the work that went into either chain is not compared.
func (c *Chain) ResolveConflicts(candidate []Block) Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Resolution{
		LocalLength:     len(c.blocks),
		CandidateLength: len(candidate),
	}

	c.evHandler("database: ResolveConflicts: local[%d]: candidate[%d]", res.LocalLength, res.CandidateLength)

	if len(candidate) <= len(c.blocks) {
		res.Outcome = RejectedNotLonger
		return res
	}

	if err := validateBlocks(candidate, c.evHandler); err != nil {
		res.Outcome = RejectedInvalid
		res.Err = err
		return res
	}

	res.Orphaned = orphaned(c.blocks, candidate)
	c.blocks = cloneBlocks(candidate)
	res.Outcome = Adopted

	c.evHandler("database: ResolveConflicts: candidate adopted: length[%d]", len(c.blocks))

	return res
}

// =============================================================================

// Outcome describes what happened to a candidate chain.
type Outcome int

// Set of conflict resolution outcomes.
const (
	Adopted Outcome = iota + 1
	RejectedNotLonger
	RejectedInvalid
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case Adopted:
		return "adopted"
	case RejectedNotLonger:
		return "rejected_not_longer"
	case RejectedInvalid:
		return "rejected_invalid"
	}
	return "unknown"
}

// Resolution is the result of resolving a conflict with a candidate chain.
// Err is set when the candidate was rejected for failing validation. Orphaned
// holds the local blocks that were dropped when the candidate was adopted.
type Resolution struct {
	Outcome         Outcome
	LocalLength     int
	CandidateLength int
	Orphaned        []Block
	Err             error
}

// Adopted reports whether the candidate replaced the local chain.
func (r Resolution) Adopted() bool {
	return r.Outcome == Adopted
}

// =============================================================================

// orphaned returns copies of the local blocks past the point where the
// candidate diverges from the local chain.
func orphaned(local []Block, candidate []Block) []Block {
	i := 0
	for i < len(local) && i < len(candidate) && local[i].Hash == candidate[i].Hash {
		i++
	}
	return cloneBlocks(local[i:])
}

func cloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
