// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time `json:"date"`
	ChainName     string    `json:"chain_name"`      // Name of this running instance, shown by the API.
	Difficulty    uint16    `json:"difficulty"`      // How difficult it needs to be to solve the work problem.
	TransPerBlock uint16    `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
}

// Default returns the genesis values used when no genesis file exists.
func Default() Genesis {
	return Genesis{
		Date:          time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainName:     "powchain",
		Difficulty:    4,
		TransPerBlock: 10,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file %q: %w", path, err)
	}

	if genesis.TransPerBlock == 0 {
		return Genesis{}, fmt.Errorf("genesis file %q: trans_per_block must be greater than zero", path)
	}

	if genesis.Difficulty > 64 {
		return Genesis{}, fmt.Errorf("genesis file %q: difficulty can't be larger than 64", path)
	}

	return genesis, nil
}
