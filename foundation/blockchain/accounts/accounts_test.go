package accounts_test

import (
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/accounts"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Accounts(t *testing.T) {
	type table struct {
		name   string
		blocks []database.Block
		final  map[string]accounts.Info
	}

	tt := []table{
		{
			name: "basic",
			blocks: []database.Block{
				database.NewBlock(0, "", []database.Tx{}, "0", 0),
				database.NewBlock(1, "", []database.Tx{
					database.NewTx("Alice", "Bob", 100),
					database.NewTx("Bob", "Charlie", 30),
				}, "", 0),
				database.NewBlock(2, "", []database.Tx{
					database.NewTx("Charlie", "Alice", 10),
				}, "", 0),
			},
			final: map[string]accounts.Info{
				"Alice":   {Sent: 100, Received: 10, Balance: -90, Txs: 2},
				"Bob":     {Sent: 30, Received: 100, Balance: 70, Txs: 2},
				"Charlie": {Sent: 10, Received: 30, Balance: 20, Txs: 2},
			},
		},
	}

	t.Log("Given the need to track the net position of accounts.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of blocks.", testID)
			{
				f := func(t *testing.T) {
					accts := accounts.New(tst.blocks)

					got := accts.Copy()
					if len(got) != len(tst.final) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d accounts, got %d.", failed, testID, len(tst.final), len(got))
					}
					t.Logf("\t%s\tTest %d:\tShould have %d accounts.", success, testID, len(tst.final))

					for id, exp := range tst.final {
						info, exists := accts.Query(id)
						if !exists || info != exp {
							t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, info)
							t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, exp)
							t.Fatalf("\t%s\tTest %d:\tShould have correct information for %s.", failed, testID, id)
						}
						t.Logf("\t%s\tTest %d:\tShould have correct information for %s.", success, testID, id)
					}

					accts.Replace(tst.blocks[:2])
					if info, _ := accts.Query("Charlie"); info.Balance != 30 {
						t.Fatalf("\t%s\tTest %d:\tShould rebuild from the replacement blocks, got %d.", failed, testID, info.Balance)
					}
					t.Logf("\t%s\tTest %d:\tShould rebuild from the replacement blocks.", success, testID)

					accts.Reset()
					if len(accts.Copy()) != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to reset the accounts.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to reset the accounts.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
