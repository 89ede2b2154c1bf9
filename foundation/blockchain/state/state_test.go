package state_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ifErrFailNow(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

func newState(t *testing.T) *state.State {
	gen := genesis.Default()
	gen.Difficulty = 2
	gen.TransPerBlock = 2

	ev := func(v string, args ...any) {
		t.Logf(v, args...)
	}

	st, err := state.New(state.Config{
		Genesis:   gen,
		EvHandler: ev,
	})
	ifErrFailNow(t, err)

	return st
}

// =============================================================================

func Test_MineNewBlock(t *testing.T) {
	t.Log("Given the need to mine blocks from the mempool.")
	{
		st := newState(t)

		t.Logf("\tTest 0:\tWhen the mempool is empty.")
		{
			if _, err := st.MineNewBlock(context.Background()); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 0:\tShould get a no transactions error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get a no transactions error.", success)
		}

		t.Logf("\tTest 1:\tWhen transactions are submitted.")
		{
			if err := st.SubmitTransaction(database.NewTx("Alice", "", 10)); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject an invalid transaction.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject an invalid transaction.", success)

			txs := []database.Tx{
				database.NewTx("Alice", "Bob", 100),
				database.NewTx("Bob", "Charlie", 40),
				database.NewTx("Charlie", "Alice", 5),
			}
			for _, tx := range txs {
				ifErrFailNow(t, st.SubmitTransaction(tx))
			}
			if st.QueryMempoolLength() != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould have 3 transactions in the mempool, got %d.", failed, st.QueryMempoolLength())
			}
			t.Logf("\t%s\tTest 1:\tShould have 3 transactions in the mempool.", success)

			block, err := st.MineNewBlock(context.Background())
			ifErrFailNow(t, err)

			if len(block.Transactions) != 2 || block.Index != 1 || !block.Mined(2) {
				t.Fatalf("\t%s\tTest 1:\tShould mine a block with 2 transactions, got %+v.", failed, block)
			}
			t.Logf("\t%s\tTest 1:\tShould mine a block with 2 transactions.", success)

			if st.QueryMempoolLength() != 1 || st.RetrieveMempool()[0] != txs[2] {
				t.Fatalf("\t%s\tTest 1:\tShould leave the newest transaction in the mempool.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the newest transaction in the mempool.", success)

			info, err := st.QueryAccount("Bob")
			ifErrFailNow(t, err)
			if info.Balance != 60 {
				t.Fatalf("\t%s\tTest 1:\tShould update the accounts, got balance %d.", failed, info.Balance)
			}
			t.Logf("\t%s\tTest 1:\tShould update the accounts.", success)

			if err := st.ValidateChain(); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould have a valid chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould have a valid chain.", success)

			latest, err := st.QueryBlockByIndex(state.QueryLatest)
			ifErrFailNow(t, err)
			if latest.Hash != block.Hash {
				t.Fatalf("\t%s\tTest 1:\tShould query the latest block.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould query the latest block.", success)

			if blocks := st.QueryBlocksByAccount("Charlie"); len(blocks) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould find 1 block for Charlie, got %d.", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 1:\tShould find 1 block for Charlie.", success)
		}
	}
}

func Test_ResolveChain(t *testing.T) {
	t.Log("Given the need to resolve the chain against a candidate.")
	{
		st := newState(t)
		ifErrFailNow(t, st.SubmitTransaction(database.NewTx("Alice", "Bob", 100)))
		_, err := st.MineNewBlock(context.Background())
		ifErrFailNow(t, err)

		other := database.NewChain()
		for i := 0; i < 3; i++ {
			nb := other.NextBlock([]database.Tx{database.NewTx("John", "Jane", 50)})
			_, err := other.AddBlock(context.Background(), nb, 1)
			ifErrFailNow(t, err)
		}

		t.Logf("\tTest 0:\tWhen the candidate is invalid.")
		{
			candidate := other.Blocks()
			candidate[2].PrevHash = candidate[0].Hash

			res := st.ResolveChain(candidate)
			if res.Outcome != database.RejectedInvalid || !database.IsValidationError(res.Err) {
				t.Fatalf("\t%s\tTest 0:\tShould reject the candidate as invalid, got %s.", failed, res.Outcome)
			}
			t.Logf("\t%s\tTest 0:\tShould reject the candidate as invalid.", success)
		}

		t.Logf("\tTest 1:\tWhen the candidate is shorter.")
		{
			res := st.ResolveChain(other.Blocks()[:2])
			if res.Outcome != database.RejectedNotLonger {
				t.Fatalf("\t%s\tTest 1:\tShould reject the candidate as not longer, got %s.", failed, res.Outcome)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the candidate as not longer.", success)
		}

		t.Logf("\tTest 2:\tWhen the candidate is longer and valid.")
		{
			res := st.ResolveChain(other.Blocks())
			if !res.Adopted() {
				t.Fatalf("\t%s\tTest 2:\tShould adopt the candidate, got %s.", failed, res.Outcome)
			}
			t.Logf("\t%s\tTest 2:\tShould adopt the candidate.", success)

			if len(st.RetrieveBlocks()) != 4 {
				t.Fatalf("\t%s\tTest 2:\tShould hold the candidate blocks.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould hold the candidate blocks.", success)

			if _, err := st.QueryAccount("Alice"); !errors.Is(err, state.ErrNotFound) {
				t.Fatalf("\t%s\tTest 2:\tShould rebuild the accounts from the candidate.", failed)
			}
			info, err := st.QueryAccount("Jane")
			ifErrFailNow(t, err)
			if info.Received != 150 {
				t.Fatalf("\t%s\tTest 2:\tShould rebuild the accounts from the candidate, got %d.", failed, info.Received)
			}
			t.Logf("\t%s\tTest 2:\tShould rebuild the accounts from the candidate.", success)
		}
	}
}

func Test_ResolveChainWhileMining(t *testing.T) {
	t.Log("Given the need to resolve the chain while a block is being mined.")
	{
		other := database.NewChain()
		for i := 0; i < 3; i++ {
			nb := other.NextBlock([]database.Tx{database.NewTx("John", "Jane", 50)})
			if _, err := other.AddBlock(context.Background(), nb, 1); err != nil {
				t.Fatalf("\t%s\tShould be able to build the candidate: %v", failed, err)
			}
		}
		candidate := other.Blocks()

		gen := genesis.Default()
		gen.Difficulty = 1

		var st *state.State
		var once sync.Once
		resolved := make(chan database.Resolution, 1)

		// Offer the candidate from another goroutine at the moment the mined
		// block is about to be applied to the mempool and accounts.
		ev := func(v string, args ...any) {
			if v == "state: MineNewBlock: MINING: update local state" {
				once.Do(func() {
					go func() {
						resolved <- st.ResolveChain(candidate)
					}()
				})
			}
		}

		var err error
		st, err = state.New(state.Config{
			Genesis:   gen,
			EvHandler: ev,
		})
		ifErrFailNow(t, err)

		tx := database.NewTx("Alice", "Bob", 50)
		ifErrFailNow(t, st.SubmitTransaction(tx))

		t.Logf("\tTest 0:\tWhen a longer candidate arrives before the mined block is applied.")
		{
			block, err := st.MineNewBlock(context.Background())
			ifErrFailNow(t, err)

			res := <-resolved

			var orphaned bool
			for _, b := range res.Orphaned {
				if b.Hash == block.Hash {
					orphaned = true
				}
			}
			if !res.Adopted() || !orphaned {
				t.Fatalf("\t%s\tTest 0:\tShould adopt the candidate and orphan the mined block, got %s.", failed, res.Outcome)
			}
			t.Logf("\t%s\tTest 0:\tShould adopt the candidate and orphan the mined block.", success)

			if blocks := st.QueryBlocksByAccount("Alice"); len(blocks) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not have Alice's transaction on the chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not have Alice's transaction on the chain.", success)

			if _, err := st.QueryAccount("Alice"); !errors.Is(err, state.ErrNotFound) {
				t.Fatalf("\t%s\tTest 0:\tShould not hold accounts for the orphaned block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not hold accounts for the orphaned block.", success)

			mp := st.RetrieveMempool()
			if len(mp) != 1 || mp[0] != tx {
				t.Fatalf("\t%s\tTest 0:\tShould put the orphaned transaction back in the mempool, got %v.", failed, mp)
			}
			t.Logf("\t%s\tTest 0:\tShould put the orphaned transaction back in the mempool.", success)

			if err := st.ValidateChain(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould have a valid chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould have a valid chain.", success)
		}
	}
}
