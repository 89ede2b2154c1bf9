package database

import (
	"errors"
	"fmt"
)

// FailureKind identifies which check failed while validating a chain.
type FailureKind int

// Set of validation failures.
const (
	HashMismatch FailureKind = iota + 1 // The stored hash doesn't match the recomputed hash.
	LinkMismatch                        // The previous hash doesn't match the prior block's hash.
)

// String implements the fmt.Stringer interface.
func (k FailureKind) String() string {
	switch k {
	case HashMismatch:
		return "hash_mismatch"
	case LinkMismatch:
		return "link_mismatch"
	}
	return "unknown"
}

// ValidationError identifies the first block in a chain that failed
// validation and why.
type ValidationError struct {
	Index int
	Kind  FailureKind
	Got   string
	Exp   string
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	switch ve.Kind {
	case HashMismatch:
		return fmt.Sprintf("block %d hash doesn't match its contents, got %s, exp %s", ve.Index, ve.Got, ve.Exp)
	case LinkMismatch:
		return fmt.Sprintf("block %d previous hash doesn't match parent block, got %s, exp %s", ve.Index, ve.Got, ve.Exp)
	}
	return fmt.Sprintf("block %d is invalid", ve.Index)
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationError returns a copy of the ValidationError pointer.
func GetValidationError(err error) *ValidationError {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return ve
}

// =============================================================================

// ValidateBlocks walks the blocks starting with the block after genesis and
// checks each block's hash against its contents and its previous hash against
// the hash of the block before it. The first failure is returned.
func ValidateBlocks(blocks []Block) error {
	return validateBlocks(blocks, func(v string, args ...any) {})
}

func validateBlocks(blocks []Block, ev EventHandler) error {
	for i := 1; i < len(blocks); i++ {
		current := blocks[i]
		previous := blocks[i-1]

		ev("database: validate: blk[%d]: check: block hash matches contents", i)

		if hash := current.ComputeHash(); current.Hash != hash {
			return &ValidationError{Index: i, Kind: HashMismatch, Got: current.Hash, Exp: hash}
		}

		ev("database: validate: blk[%d]: check: previous hash matches parent block", i)

		if current.PrevHash != previous.Hash {
			return &ValidationError{Index: i, Kind: LinkMismatch, Got: current.PrevHash, Exp: previous.Hash}
		}
	}

	return nil
}
