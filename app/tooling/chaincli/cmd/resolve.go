package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var peerURL string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Fetch a peer's chain and offer it to the node as a candidate.",
	RunE:  resolveRun,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&peerURL, "peer", "e", "", "Url of the peer's public API to fetch the candidate chain from.")
}

func resolveRun(cmd *cobra.Command, args []string) error {
	if peerURL == "" {
		return errors.New("peer url is required")
	}

	var candidate []database.BlockData
	if err := call(http.MethodGet, fmt.Sprintf("%s/v1/chain/list", peerURL), nil, &candidate); err != nil {
		return fmt.Errorf("fetching peer chain: %w", err)
	}

	var resp struct {
		Outcome         string `json:"outcome"`
		LocalLength     int    `json:"local_length"`
		CandidateLength int    `json:"candidate_length"`
		Error           string `json:"error"`
	}
	if err := call(http.MethodPost, fmt.Sprintf("%s/v1/node/chain/resolve", privateURL), candidate, &resp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: local[%d] candidate[%d]\n", resp.Outcome, resp.LocalLength, resp.CandidateLength)
	if resp.Error != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp.Error)
	}

	return nil
}
