package commands

import "github.com/spf13/cobra"

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "optimas",
		Short:         "Optimas Fibre website and admin dashboard server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSecretCmd())
	cmd.AddCommand(newTotalsCmd())
	cmd.AddCommand(newSessionsCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
