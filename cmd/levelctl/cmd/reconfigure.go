package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	reconfigureCmd := &cobra.Command{
		Use:   "reconfigure",
		Short: "Reload the configuration from its source",
		RunE:  runReconfigure,
	}

	rootCmd.AddCommand(reconfigureCmd)
}

func runReconfigure(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	entries, err := client.Reconfigure(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reconfigure: %w", err)
	}

	printEntries(entries)
	return nil
}
