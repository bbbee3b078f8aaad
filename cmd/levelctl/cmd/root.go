package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/admin"
	"github.com/Sunyelw/logging-log4j2/pkg/adminclient"
	"github.com/spf13/cobra"
)

var (
	endpoint string
)

var rootCmd = &cobra.Command{
	Use:   "levelctl",
	Short: "Adjust logger levels on a running service",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8686", "management endpoint base URL")
}

func newClient() (adminclient.Client, error) {
	return adminclient.New(&adminclient.Config{Endpoint: endpoint}, &http.Client{
		Timeout: 30 * time.Second,
	})
}

func printEntries(entries []admin.LoggerEntry) {
	for _, e := range entries {
		extra := ""
		if !e.Additive {
			extra = " additive=false"
		}
		if len(e.Appenders) > 0 {
			extra += " appenders=" + strings.Join(e.Appenders, ",")
		}

		fmt.Printf("%s=%s%s\n", e.Name, e.Level, extra)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
