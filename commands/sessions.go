package commands

import (
	"fmt"

	"optimasfibre-web/config"
	"optimasfibre-web/store"

	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage admin sessions",
	}
	cmd.AddCommand(newSessionsPurgeCmd())
	return cmd
}

func newSessionsPurgeCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete expired admin sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				config.LoadEnv()
				path = config.Load().SessionDBPath
			}

			s, err := store.OpenSessions(path)
			if err != nil {
				return fmt.Errorf("opening session store: %w", err)
			}
			defer s.Close()

			n, err := s.PurgeExpired()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired session(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "db", "", "session database path (defaults to SESSION_DB_PATH)")
	return cmd
}
