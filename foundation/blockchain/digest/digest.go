// Package digest provides the hashing and proof of work predicate used by
// the blockchain.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ZeroHash is the previous hash recorded in a genesis block, which has no
// real predecessor.
const ZeroHash string = "0"

// Size is the length of a hex encoded SHA-256 digest.
const Size = sha256.Size * 2

// MaxDifficulty is the largest difficulty that can be solved since a digest
// only has Size characters.
const MaxDifficulty = Size

// =============================================================================

// Hash returns the lowercase hex encoded SHA-256 digest of data.
func Hash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading '0' characters.
func IsHashSolved(difficulty uint, hash string) bool {
	if len(hash) != Size || difficulty > MaxDifficulty {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == int(difficulty)
}
