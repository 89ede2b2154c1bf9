package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	sender   string
	receiver string
	amount   int64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node's mempool.",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Identifier of the party sending the amount.")
	sendCmd.Flags().StringVarP(&receiver, "receiver", "r", "", "Identifier of the party receiving the amount.")
	sendCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Amount to send.")
}

func sendRun(cmd *cobra.Command, args []string) error {
	tx := database.NewTx(sender, receiver, amount)
	if err := tx.Validate(); err != nil {
		return err
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := call(http.MethodPost, fmt.Sprintf("%s/v1/tx/submit", url), tx, &resp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", tx, resp.Status)
	return nil
}
