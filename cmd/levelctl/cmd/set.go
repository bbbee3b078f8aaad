package cmd

import (
	"fmt"
	"os"

	"github.com/Sunyelw/logging-log4j2/pkg/admin"
	"github.com/Sunyelw/logging-log4j2/pkg/configurator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var setFile string

func init() {
	setCmd := &cobra.Command{
		Use:   "set [name=LEVEL ...]",
		Short: "Change logger levels",
		Long: `Change one or more logger levels on the running service.

Levels are given as name=LEVEL arguments; the name "root" targets the
root logger. With --file, a YAML mapping of logger names to levels is
applied first and name=LEVEL arguments override it.`,
		RunE: runSet,
	}

	setCmd.Flags().StringVar(&setFile, "file", "", "YAML file with a logger: level mapping")

	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	levels, err := collectLevels(args)
	if err != nil {
		return err
	}

	if len(levels) == 0 {
		return fmt.Errorf("nothing to set: give name=LEVEL arguments or --file")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if len(levels) == 1 {
		for name, lvl := range levels {
			var entry admin.LoggerEntry
			if name == "root" {
				entry, err = client.SetRootLevel(cmd.Context(), lvl)
			} else {
				entry, err = client.SetLevel(cmd.Context(), name, lvl)
			}
			if err != nil {
				return fmt.Errorf("failed to set %s=%s: %w", name, lvl, err)
			}

			fmt.Printf("%s=%s\n", entry.Name, entry.Level)
		}

		return nil
	}

	entries, err := client.SetLevels(cmd.Context(), levels)
	if err != nil {
		return fmt.Errorf("failed to set levels: %w", err)
	}

	printEntries(entries)
	return nil
}

// collectLevels merges the --file mapping with name=LEVEL arguments,
// the arguments winning on conflict.
func collectLevels(args []string) (map[string]string, error) {
	levels := map[string]string{}

	if setFile != "" {
		raw, err := os.ReadFile(setFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", setFile, err)
		}

		if err := yaml.Unmarshal(raw, &levels); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", setFile, err)
		}
	}

	assignments, err := configurator.ParseAssignments(args)
	if err != nil {
		return nil, err
	}

	for _, a := range assignments {
		name := a.Logger
		if name == "" {
			name = "root"
		}

		levels[name] = a.Level.String()
	}

	return levels, nil
}
