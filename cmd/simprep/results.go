package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/results"
)

type resultsOptions struct {
	RegistryPath string
	JSON         bool
}

var resultsCmdRunner = runResults

func newResultsCmd(root *rootFlags) *cobra.Command {
	opts := resultsOptions{}

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List recorded simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return resultsCmdRunner(opts)
		},
	}

	cmd.Flags().StringVar(&opts.RegistryPath, "registry", "", "Run registry path (defaults to ~/.simprep/runs.json)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")

	return cmd
}

func runResults(opts resultsOptions) error {
	registryPath := opts.RegistryPath
	if registryPath == "" {
		var err error
		registryPath, err = defaultRegistryPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving registry path: %v\n", err)
			os.Exit(3)
		}
	}

	registry, err := results.NewRegistry(registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run registry: %v\n", err)
		os.Exit(3)
	}

	records := registry.Records()
	if opts.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(records)
		return nil
	}

	printRecords(os.Stdout, records)
	return nil
}

func printRecords(w io.Writer, records []model.RunRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded yet")
		return
	}

	fmt.Fprintf(w, "%-36s %-16s %-10s %-8s %-6s %s\n", "Run ID", "Label", "Recipe", "Status", "Exit", "Started")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, record := range records {
		status := string(record.Status)
		if record.Status == model.RunStatusExited && record.ExitCode != 0 {
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(status)
		} else if record.Status == model.RunStatusExited {
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(status)
		}

		exit := "-"
		if record.Status == model.RunStatusExited {
			exit = fmt.Sprintf("%d", record.ExitCode)
		}

		fmt.Fprintf(w, "%-36s %-16s %-10s %-8s %-6s %s\n",
			truncateString(record.RunID, 36),
			truncateString(record.Label, 16),
			record.RecipeID,
			status,
			exit,
			record.StartedAt.Format(time.RFC3339),
		)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
