package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction from a client for inclusion in a
// future block and signals the worker to start mining.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.evHandler("state: SubmitTransaction: started : tx[%s]", tx)
	defer s.evHandler("state: SubmitTransaction: completed")

	n, err := s.mempool.Add(tx)
	if err != nil {
		return err
	}

	s.evHandler("state: SubmitTransaction: mempool: txs[%d]", n)

	s.Worker.SignalStartMining()

	return nil
}
