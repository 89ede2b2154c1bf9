package worker_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Mining(t *testing.T) {
	t.Log("Given the need to mine submitted transactions in the background.")
	{
		gen := genesis.Default()
		gen.Difficulty = 1
		gen.TransPerBlock = 1

		ev := func(v string, args ...any) {
			t.Logf(v, args...)
		}

		st, err := state.New(state.Config{
			Genesis:   gen,
			EvHandler: ev,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
		}

		worker.Run(st, ev)
		defer st.Shutdown()

		t.Logf("\tTest 0:\tWhen two transactions are submitted.")
		{
			txs := []database.Tx{
				database.NewTx("Alice", "Bob", 50),
				database.NewTx("Charlie", "David", 25),
			}
			for _, tx := range txs {
				if err := st.SubmitTransaction(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to submit the transaction: %v", failed, err)
				}
			}

			deadline := time.Now().Add(5 * time.Second)
			for (len(st.RetrieveBlocks()) < 3 || st.QueryMempoolLength() > 0) && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}

			blocks := st.RetrieveBlocks()
			if len(blocks) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould mine a block per transaction, got %d blocks.", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 0:\tShould mine a block per transaction.", success)

			if st.QueryMempoolLength() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould drain the mempool, got %d.", failed, st.QueryMempoolLength())
			}
			t.Logf("\t%s\tTest 0:\tShould drain the mempool.", success)

			if err := st.ValidateChain(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould have a valid chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould have a valid chain.", success)
		}
	}
}
