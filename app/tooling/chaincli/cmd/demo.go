package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var difficulty uint

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build, tamper with and resolve chains in memory without a node.",
	RunE:  demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().UintVarP(&difficulty, "difficulty", "d", database.DefaultDifficulty, "Number of leading zeros a block hash needs.")
}

func demoRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	chain := database.NewChain(database.WithDifficulty(difficulty))

	sets := [][]database.Tx{
		{database.NewTx("Alice", "Bob", 50), database.NewTx("Bob", "Charlie", 25)},
		{database.NewTx("Charlie", "Alice", 10)},
	}
	for _, txs := range sets {
		block, err := chain.AddBlock(ctx, chain.NextBlock(txs), chain.Difficulty())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "mined block %d: nonce[%d] hash[%s]\n", block.Index, block.Nonce, block.Hash)
	}

	if err := display(out, chain.Blocks()); err != nil {
		return err
	}
	fmt.Fprintf(out, "chain valid: %t\n", chain.IsChainValid())

	tampered := chain.Blocks()
	tampered[1].Transactions[0].Amount = 5000
	fmt.Fprintf(out, "tampered copy: %v\n", database.ValidateBlocks(tampered))

	other := database.NewChain(database.WithDifficulty(difficulty))
	for i := 0; i < chain.Length(); i++ {
		txs := []database.Tx{database.NewTx("Dave", "Eve", int64(i+1))}
		if _, err := other.AddBlock(ctx, other.NextBlock(txs), other.Difficulty()); err != nil {
			return err
		}
	}

	res := chain.ResolveConflicts(other.Blocks())
	fmt.Fprintf(out, "resolve: %s: local[%d] candidate[%d]\n", res.Outcome, res.LocalLength, res.CandidateLength)

	return nil
}

func display(w io.Writer, blocks []database.Block) error {
	for _, block := range blocks {
		if err := printJSON(w, database.NewBlockData(block)); err != nil {
			return err
		}
	}
	return nil
}
