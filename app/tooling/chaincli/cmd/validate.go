package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ask the node to validate its chain.",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	var resp struct {
		Valid  bool   `json:"valid"`
		Length int    `json:"length"`
		Error  string `json:"error"`
	}
	if err := call(http.MethodGet, fmt.Sprintf("%s/v1/chain/validate", url), nil, &resp); err != nil {
		return err
	}

	if !resp.Valid {
		return fmt.Errorf("chain of %d blocks is invalid: %s", resp.Length, resp.Error)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "chain of %d blocks is valid\n", resp.Length)
	return nil
}
