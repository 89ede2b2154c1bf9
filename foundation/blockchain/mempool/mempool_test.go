package mempool_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
		best int
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				database.NewTx("Alice", "Bob", 10),
				database.NewTx("Charlie", "David", 50),
				database.NewTx("Alice", "Bob", 10),
				database.NewTx("Eve", "Mallory", 100),
			},
			best: 2,
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transactions.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						n, err := mp.Add(tx)
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to add transaction %s: %v", failed, testID, tx, err)
						}
						if n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the new count %d, got %d.", failed, testID, i+1, n)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add new transactions.", success, testID)

					for i, tx := range mp.PickBest(tst.best) {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back the oldest transactions.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back the oldest transactions.", success, testID)

					if l := len(mp.PickBest(100)); l != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould cap the pick at the pool size, got %d.", failed, testID, l)
					}
					t.Logf("\t%s\tTest %d:\tShould cap the pick at the pool size.", success, testID)

					if !mp.Delete(tst.txs[0]) {
						t.Fatalf("\t%s\tTest %d:\tShould be able to remove a transaction.", failed, testID)
					}
					copied := mp.Copy()
					if len(copied) != 3 || copied[1] != tst.txs[2] {
						t.Fatalf("\t%s\tTest %d:\tShould remove only the oldest duplicate.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould remove only the oldest duplicate.", success, testID)

					if mp.Delete(database.NewTx("Nobody", "Nowhere", 1)) {
						t.Fatalf("\t%s\tTest %d:\tShould not remove an unknown transaction.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not remove an unknown transaction.", success, testID)

					mp.Truncate()
					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to truncate mempool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to truncate mempool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestAddInvalid(t *testing.T) {
	t.Log("Given the need to keep invalid transactions out of the mempool.")
	{
		mp := mempool.New()

		if _, err := mp.Add(database.NewTx("Alice", "Bob", 0)); !errors.Is(err, database.ErrNonPositiveAmount) {
			t.Fatalf("\t%s\tShould reject a zero amount, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould reject a zero amount.", success)

		if mp.Count() != 0 {
			t.Fatalf("\t%s\tShould not store the rejected transaction.", failed)
		}
		t.Logf("\t%s\tShould not store the rejected transaction.", success)
	}
}
