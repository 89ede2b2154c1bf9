package state

import (
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// ResolveChain compares the local chain with a candidate chain received from
// outside the node, adopting the candidate when it's longer and valid. Mining
// is stopped while this happens since a mined block would no longer link to
// the new tip.
func (s *State) ResolveChain(candidate []database.Block) database.Resolution {
	s.evHandler("state: ResolveChain: started: candidate[%d]", len(candidate))
	defer s.evHandler("state: ResolveChain: completed")

	// Stop any block being mined against the current tip.
	s.Worker.SignalCancelMining()

	// Wait for any block being mined to be added along with its local state
	// changes before the chain can be replaced.
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.chain.ResolveConflicts(candidate)

	switch res.Outcome {
	case database.Adopted:
		s.evHandler("state: ResolveChain: adopted: length[%d]: orphaned[%d]", res.CandidateLength, len(res.Orphaned))
		s.accounts.Replace(s.chain.Blocks())

		// Transactions that only lived in dropped blocks need to be mined again.
		for _, block := range res.Orphaned {
			for _, tx := range block.Transactions {
				if _, err := s.mempool.Add(tx); err != nil {
					s.evHandler("state: ResolveChain: orphaned tx[%s]: dropped: %s", tx, err)
				}
			}
		}

		// Anything left in the mempool may now be mined on the new chain.
		if s.mempool.Count() > 0 {
			defer s.Worker.SignalStartMining()
		}

	case database.RejectedInvalid:
		s.evHandler("state: ResolveChain: rejected: %s", res.Err)

	default:
		s.evHandler("state: ResolveChain: rejected: candidate[%d] not longer than local[%d]", res.CandidateLength, res.LocalLength)
	}

	return res
}

// ValidateChain checks the local chain for hash integrity and linkage.
func (s *State) ValidateChain() error {
	return s.chain.Validate()
}
