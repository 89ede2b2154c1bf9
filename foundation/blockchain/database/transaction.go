package database

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/powchain/foundation/blockchain/canon"
)

// Set of errors describing why a transaction is not valid.
var (
	ErrMissingSender     = errors.New("transaction invalid, sender is required")
	ErrMissingReceiver   = errors.New("transaction invalid, receiver is required")
	ErrNonPositiveAmount = errors.New("transaction invalid, amount must be greater than zero")
)

// =============================================================================

// Tx is the transactional information between two parties. Nothing stops a
// caller from changing a Tx after it is placed in a block, which is exactly
// what chain validation detects.
type Tx struct {
	Sender   string `json:"sender"`   // Identifier of the party sending the amount.
	Receiver string `json:"receiver"` // Identifier of the party receiving the amount.
	Amount   int64  `json:"amount"`   // Amount being transferred, must be positive.
}

// NewTx constructs a new transaction.
func NewTx(sender string, receiver string, amount int64) Tx {
	return Tx{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}
}

// Representation returns the canonical mapping for the transaction. This is
// the form the transaction takes inside the hash input of its block.
func (tx Tx) Representation() canon.Record {
	return canon.Record{
		{Key: "sender", Value: tx.Sender},
		{Key: "receiver", Value: tx.Receiver},
		{Key: "amount", Value: tx.Amount},
	}
}

// Validate checks the sender and receiver are provided and the amount is
// positive.
func (tx Tx) Validate() error {
	if tx.Sender == "" {
		return ErrMissingSender
	}

	if tx.Receiver == "" {
		return ErrMissingReceiver
	}

	if tx.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	return nil
}

// IsValid reports whether the transaction passes Validate.
func (tx Tx) IsValid() bool {
	return tx.Validate() == nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.Sender, tx.Receiver, tx.Amount)
}

// representations converts the transactions into their canonical mappings.
func representations(txs []Tx) []canon.Record {
	records := make([]canon.Record, len(txs))
	for i, tx := range txs {
		records[i] = tx.Representation()
	}
	return records
}
