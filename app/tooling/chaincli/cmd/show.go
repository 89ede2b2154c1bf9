package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var index string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the node's chain, or a single block.",
	RunE:  showRun,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&index, "index", "i", "", "Index of a single block to print, or latest.")
}

func showRun(cmd *cobra.Command, args []string) error {
	if index != "" {
		var bd database.BlockData
		if err := call(http.MethodGet, fmt.Sprintf("%s/v1/blocks/index/%s", url, index), nil, &bd); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), bd)
	}

	var bds []database.BlockData
	if err := call(http.MethodGet, fmt.Sprintf("%s/v1/chain/list", url), nil, &bds); err != nil {
		return err
	}

	for _, bd := range bds {
		if err := printJSON(cmd.OutOrStdout(), bd); err != nil {
			return err
		}
	}

	return nil
}
