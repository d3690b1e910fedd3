package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/simprep/internal/config"
	"github.com/alexisbeaulieu97/simprep/internal/diagnostics"
	"github.com/alexisbeaulieu97/simprep/internal/execution"
	"github.com/alexisbeaulieu97/simprep/internal/logger"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/readiness"
)

type checklistOptions struct {
	ProjectPath string
	ReportPath  string
	EnginePath  string
	JSON        bool
	Verbose     bool
}

var checklistCmdRunner = runChecklist

func newChecklistCmd(root *rootFlags) *cobra.Command {
	opts := checklistOptions{}

	cmd := &cobra.Command{
		Use:   "checklist <project-file>",
		Short: "Evaluate launch readiness for a project",
		Long: `Checklist evaluates the seven launch readiness steps for a project and
prints their statuses. Returns exit code 0 when the project can be launched,
exit code 1 when any step reports an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ProjectPath = args[0]
			opts.Verbose = root.verbose

			return checklistCmdRunner(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Path to an analyzer diagnostics report (YAML)")
	cmd.Flags().StringVar(&opts.EnginePath, "engine", "energyplus", "Simulation engine executable path or name")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")

	return cmd
}

func runChecklist(opts checklistOptions) error {
	project, err := config.ParseProject(opts.ProjectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing project: %v\n", err)
		os.Exit(2)
	}
	if err := config.ValidateProject(project); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid project: %v\n", err)
		os.Exit(2)
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.JSON})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	var report *diagnostics.Report
	if opts.ReportPath != "" {
		report, err = diagnostics.NewFileSource(opts.ReportPath).GenerateReport(context.Background())
		if err != nil {
			log.WithFields(map[string]any{"report": opts.ReportPath}).Warn("diagnostics report unavailable, continuing without it")
			report = nil
		}
	}

	boundary := execution.NewLocalBoundary(opts.EnginePath, "", log)
	steps := readiness.Evaluate(project, report, readiness.Options{ExecutorAvailable: boundary.Available()})

	if opts.JSON {
		printChecklistJSON(os.Stdout, opts.ProjectPath, steps)
	} else {
		printChecklistTable(os.Stdout, project.Name, steps, isTerminal(os.Stdout))
	}

	if model.ChecklistBlocked(steps) {
		os.Exit(1)
	}
	return nil
}

func printChecklistTable(w io.Writer, projectName string, steps []model.ChecklistStep, unicode bool) {
	if projectName == "" {
		projectName = "(unnamed project)"
	}
	fmt.Fprintf(w, "\nLaunch readiness for %s:\n", projectName)
	fmt.Fprintln(w, strings.Repeat("=", 72))

	for _, step := range steps {
		icon := step.Status.IconFallback()
		if unicode {
			icon = step.Status.Icon()
		}
		label := lipgloss.NewStyle().Foreground(step.Status.Color()).Render(step.Label)
		fmt.Fprintf(w, " %s %-24s %s\n", icon, label, step.Description)
		for _, action := range step.Actions {
			fmt.Fprintf(w, "      → %s\n", action.Label)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 72))
	if model.ChecklistBlocked(steps) {
		fmt.Fprintln(w, "\nLaunch blocked: fix the steps marked with errors first")
	} else {
		fmt.Fprintln(w, "\nReady to launch: run 'simprep run' to start a simulation")
	}
}

func printChecklistJSON(w io.Writer, projectPath string, steps []model.ChecklistStep) {
	type jsonOutput struct {
		ProjectFile string                `json:"project_file"`
		Blocked     bool                  `json:"blocked"`
		Steps       []model.ChecklistStep `json:"steps"`
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(jsonOutput{
		ProjectFile: projectPath,
		Blocked:     model.ChecklistBlocked(steps),
		Steps:       steps,
	})
}
