package commands

import (
	"fmt"

	"optimasfibre-web/utils"

	"github.com/spf13/cobra"
)

func newSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Print a new random SESSION_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), utils.GenerateSessionSecret())
			return err
		},
	}
}
