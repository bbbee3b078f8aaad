package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running logging context",
		RunE:  runStatus,
	}

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	st, err := client.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch status: %w", err)
	}

	fmt.Printf("context:       %s\n", st.Context)
	fmt.Printf("configuration: %s\n", st.Configuration)
	fmt.Printf("source:        %s\n", st.Source)
	fmt.Printf("watch:         %t\n", st.Watch)
	fmt.Printf("loggers:       %d\n", st.Loggers)
	if len(st.Appenders) > 0 {
		fmt.Printf("appenders:     %s\n", strings.Join(st.Appenders, ", "))
	}
	if st.Uptime != "" {
		fmt.Printf("uptime:        %s\n", st.Uptime)
	}

	return nil
}
