package database

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/canon"
	"github.com/ardanlabs/powchain/foundation/blockchain/digest"
)

// Set of errors returned by the proof of work search.
var (
	ErrMiningCancelled = errors.New("mining cancelled")
	ErrMiningBudget    = errors.New("mining budget exhausted, no solution found")
	ErrDifficultyRange = fmt.Errorf("difficulty can't be larger than %d", digest.MaxDifficulty)
)

// =============================================================================

// Block represents a group of transactions batched together. Hash is a cached
// value derived from the other fields. It's kept in sync by NewBlock and
// ProofOfWork, and is never trusted by validation without recomputing it.
type Block struct {
	Index        uint64 // Position of the block in the chain.
	Timestamp    string // Time the block was created, see Timestamp.
	Transactions []Tx   // Transactions recorded in this block.
	PrevHash     string // Hash of the previous block in the chain.
	Nonce        uint64 // Value identified to solve the hash solution.
	Hash         string // Cached hash of the fields above.
}

// NewBlock constructs a block and computes its hash from the initial nonce.
func NewBlock(index uint64, timestamp string, txs []Tx, prevHash string, nonce uint64) Block {
	b := Block{
		Index:        index,
		Timestamp:    timestamp,
		Transactions: txs,
		PrevHash:     prevHash,
		Nonce:        nonce,
	}
	b.Hash = b.ComputeHash()

	return b
}

// Timestamp returns the textual time stamp recorded in a block, formatted as
// day/month/year hour:minute:second microsecond.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s %06d", t.Format("02/01/2006 15:04:05"), t.Nanosecond()/int(time.Microsecond))
}

// ComputeHash returns the hash for the current field values of the block. It
// doesn't change the block, so it can be called at any time to cross check
// the cached Hash field.
func (b Block) ComputeHash() string {
	return hashWithNonce(b.hashPrefix(), b.Nonce)
}

// Mined reports whether the cached hash satisfies the specified difficulty.
func (b Block) Mined(difficulty uint) bool {
	return digest.IsHashSolved(difficulty, b.Hash)
}

// Clone returns a copy of the block that doesn't share the transactions.
func (b Block) Clone() Block {
	b.Transactions = slices.Clone(b.Transactions)
	return b
}

// =============================================================================

// powConfig holds the settings for a single proof of work search.
type powConfig struct {
	evHandler   EventHandler
	maxAttempts uint64
}

// POWOption changes the behavior of ProofOfWork.
type POWOption func(cfg *powConfig)

// WithEvents provides a handler for progress events raised while mining.
func WithEvents(ev EventHandler) POWOption {
	return func(cfg *powConfig) {
		if ev != nil {
			cfg.evHandler = ev
		}
	}
}

// WithMaxAttempts bounds the number of nonces that will be tried. Zero means
// there is no bound.
func WithMaxAttempts(attempts uint64) POWOption {
	return func(cfg *powConfig) {
		cfg.maxAttempts = attempts
	}
}

// ProofOfWork does the work of mining to find a valid hash for the block.
// Pointer semantics are being used since a nonce is being discovered. The
// nonce is incremented by 1 until the hash starts with difficulty number of
// '0' characters. With a difficulty of 0 the nonce is never changed.
//
// The search can be cancelled through the context, and is bounded when the
// WithMaxAttempts option is provided. In both cases the block is left with a
// hash that matches its current nonce.
func (b *Block) ProofOfWork(ctx context.Context, difficulty uint, options ...POWOption) error {
	if difficulty > digest.MaxDifficulty {
		return ErrDifficultyRange
	}

	cfg := powConfig{
		evHandler: func(v string, args ...any) {},
	}
	for _, option := range options {
		option(&cfg)
	}
	ev := cfg.evHandler

	// The fields feeding the hash don't change during the search, only the
	// nonce does. Any edits made before this call are picked up here.
	prefix := b.hashPrefix()
	b.Hash = hashWithNonce(prefix, b.Nonce)

	ev("database: ProofOfWork: MINING: started: blk[%d]: difficulty[%d]", b.Index, difficulty)

	// Loop until we find a solution or we are told to stop.
	var attempts uint64
	for !digest.IsHashSolved(difficulty, b.Hash) {

		// Did we timeout trying to solve the problem.
		if err := ctx.Err(); err != nil {
			ev("database: ProofOfWork: MINING: CANCELLED: attempts[%d]", attempts)
			return fmt.Errorf("%w: %w", ErrMiningCancelled, err)
		}

		if cfg.maxAttempts > 0 && attempts >= cfg.maxAttempts {
			ev("database: ProofOfWork: MINING: BUDGET: attempts[%d]", attempts)
			return ErrMiningBudget
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: ProofOfWork: MINING: attempts[%d]", attempts)
		}

		b.Nonce++
		b.Hash = hashWithNonce(prefix, b.Nonce)
	}

	ev("database: ProofOfWork: MINING: SOLVED: blk[%d]: nonce[%d]: hash[%s]: attempts[%d]", b.Index, b.Nonce, b.Hash, attempts)

	return nil
}

// =============================================================================

// hashPrefix returns the hash input for every field except the nonce, which
// always comes last. The fields are concatenated without separators.
func (b Block) hashPrefix() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(b.Index, 10))
	sb.WriteString(b.Timestamp)
	sb.WriteString(canon.List(representations(b.Transactions)))
	sb.WriteString(b.PrevHash)

	return sb.String()
}

// hashWithNonce completes the hash input with the nonce and hashes it.
func hashWithNonce(prefix string, nonce uint64) string {
	return digest.Hash(prefix + strconv.FormatUint(nonce, 10))
}

// =============================================================================

// BlockData represents the block as it's exchanged with callers outside the
// node. The stored hash travels with the block so a receiver can check it.
type BlockData struct {
	Index        uint64 `json:"index"`
	Timestamp    string `json:"timestamp"`
	Transactions []Tx   `json:"transactions"`
	Hash         string `json:"hash"`
	PrevHash     string `json:"previous_hash"`
	Nonce        uint64 `json:"nonce"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block) BlockData {
	txs := slices.Clone(block.Transactions)
	if txs == nil {
		txs = []Tx{}
	}

	return BlockData{
		Index:        block.Index,
		Timestamp:    block.Timestamp,
		Transactions: txs,
		Hash:         block.Hash,
		PrevHash:     block.PrevHash,
		Nonce:        block.Nonce,
	}
}

// ToBlock converts a BlockData into a Block. The hash is taken as provided
// and not recomputed, otherwise tampering could never be detected.
func ToBlock(blockData BlockData) Block {
	return Block{
		Index:        blockData.Index,
		Timestamp:    blockData.Timestamp,
		Transactions: slices.Clone(blockData.Transactions),
		PrevHash:     blockData.PrevHash,
		Nonce:        blockData.Nonce,
		Hash:         blockData.Hash,
	}
}
