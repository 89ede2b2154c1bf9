package public

import (
	"github.com/ardanlabs/powchain/business/sys/validate"
	"github.com/ardanlabs/powchain/foundation/blockchain/accounts"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// newTx is the payload a client submits to add a transaction to the mempool.
type newTx struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

// Validate checks the data in the model is considered clean.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

func (ntx newTx) toTx() database.Tx {
	return database.NewTx(ntx.Sender, ntx.Receiver, ntx.Amount)
}

// =============================================================================

type info struct {
	Account  string `json:"account"`
	Sent     int64  `json:"sent"`
	Received int64  `json:"received"`
	Balance  int64  `json:"balance"`
	Txs      uint   `json:"txs"`
}

func toInfo(account string, ai accounts.Info) info {
	return info{
		Account:  account,
		Sent:     ai.Sent,
		Received: ai.Received,
		Balance:  ai.Balance,
		Txs:      ai.Txs,
	}
}

type actInfo struct {
	LatestBlock string `json:"latest_block"`
	Uncommitted int    `json:"uncommitted"`
	Accounts    []info `json:"accounts"`
}

type validation struct {
	Valid  bool   `json:"valid"`
	Length int    `json:"length"`
	Index  *int   `json:"index,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Error  string `json:"error,omitempty"`
}

func toBlockData(blocks []database.Block) []database.BlockData {
	out := make([]database.BlockData, len(blocks))
	for i, block := range blocks {
		out[i] = database.NewBlockData(block)
	}
	return out
}
