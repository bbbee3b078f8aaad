package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	getCmd := &cobra.Command{
		Use:   "get [logger]",
		Short: "Show effective logger levels",
		Long:  `Show all configured logger entries, or the effective entry for one logger name.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGet,
	}

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		entries, err := client.Loggers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list loggers: %w", err)
		}

		printEntries(entries)
		return nil
	}

	entry, err := client.Logger(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get logger %q: %w", args[0], err)
	}

	if entry.Exact != nil && !*entry.Exact {
		fmt.Printf("%s=%s (inherited from %s)\n", args[0], entry.Level, entry.Name)
		return nil
	}

	fmt.Printf("%s=%s\n", entry.Name, entry.Level)
	return nil
}
