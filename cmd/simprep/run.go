package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/simprep/internal/config"
	"github.com/alexisbeaulieu97/simprep/internal/diagnostics"
	"github.com/alexisbeaulieu97/simprep/internal/execution"
	"github.com/alexisbeaulieu97/simprep/internal/logger"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/orchestrator"
	"github.com/alexisbeaulieu97/simprep/internal/preflight"
	"github.com/alexisbeaulieu97/simprep/internal/readiness"
	"github.com/alexisbeaulieu97/simprep/internal/results"
	"github.com/alexisbeaulieu97/simprep/internal/tui"
)

type runOptions struct {
	ProjectPath  string
	IdfPath      string
	EpwPath      string
	EnginePath   string
	Recipe       string
	Name         string
	ReportPath   string
	OutDir       string
	RegistryPath string
	Plain        bool
	Verbose      bool
}

var runCmdRunner = runSimulation

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run [project-file]",
		Short: "Launch a simulation run and stream its output",
		Long: `Run submits a single simulation to the local engine and follows it to
termination. Output is streamed live; the terminal result is categorized and
recorded in the run registry. When a project file is given, the readiness
checklist is re-evaluated after the run finishes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.ProjectPath = args[0]
			}
			opts.Verbose = root.verbose

			return runCmdRunner(opts)
		},
	}

	cmd.Flags().StringVar(&opts.IdfPath, "idf", "", "Path to the building model input file")
	cmd.Flags().StringVar(&opts.EpwPath, "epw", "", "Path to the weather file")
	cmd.Flags().StringVar(&opts.EnginePath, "engine", "energyplus", "Simulation engine executable path or name")
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "annual", "Run recipe (annual, design-day, sizing)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Human-readable run name")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Path to an analyzer diagnostics report (YAML)")
	cmd.Flags().StringVar(&opts.OutDir, "out", "simprep-out", "Base directory for run output")
	cmd.Flags().StringVar(&opts.RegistryPath, "registry", "", "Run registry path (defaults to ~/.simprep/runs.json)")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Stream plain output instead of the interactive monitor")

	return cmd
}

func runSimulation(opts runOptions) error {
	if err := validateRunOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	registryPath := opts.RegistryPath
	if registryPath == "" {
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

	boundary := execution.NewLocalBoundary(opts.EnginePath, opts.OutDir, log)
	validator := preflight.NewValidator(nil)

	req := model.RunRequest{
		IdfPath:        opts.IdfPath,
		EpwPath:        opts.EpwPath,
		ExecutablePath: opts.EnginePath,
		RecipeID:       opts.Recipe,
		RunName:        opts.Name,
		RunID:          model.NewRunID(opts.Name),
	}

	if opts.Plain || !isTerminal(os.Stdout) {
		return runPlain(opts, validator, boundary, registry, log, req)
	}
	return runInteractive(opts, validator, boundary, registry, log, req)
}

func runPlain(opts runOptions, validator *preflight.Validator, boundary *execution.LocalBoundary, registry *results.Registry, log *logger.Logger, req model.RunRequest) error {
	var (
		mu      sync.Mutex
		printed int
		orch    *orchestrator.Orchestrator
	)
	orch = orchestrator.New(validator, boundary, registry, log, func() {
		mu.Lock()
		defer mu.Unlock()
		text := orch.Transcript().String()
		if len(text) > printed {
			fmt.Print(text[printed:])
			printed = len(text)
		}
	})

	if err := orch.Submit(context.Background(), req); err != nil {
		exitForSubmitError(err)
	}

	outcome := <-orch.Done()
	printOutcome(outcome)
	printPostRunChecklist(opts, log)
	if outcome.ExitCode != 0 {
		os.Exit(1)
	}
	return nil
}

func runInteractive(opts runOptions, validator *preflight.Validator, boundary *execution.LocalBoundary, registry *results.Registry, log *logger.Logger, req model.RunRequest) error {
	p := tea.NewProgram(tui.NewModel(req.RunID, opts.Name))

	var orch *orchestrator.Orchestrator
	orch = orchestrator.New(validator, boundary, registry, log, func() {
		p.Send(tui.TranscriptMsg{Text: orch.Transcript().String()})
	})

	// Submission runs alongside the monitor: Send blocks until the event
	// loop is receiving, and transcript notifications fire during Submit.
	go func() {
		if err := orch.Submit(context.Background(), req); err != nil {
			p.Send(tui.SubmitFailedMsg{Err: err})
			return
		}
		outcome := <-orch.Done()
		p.Send(tui.OutcomeMsg{Outcome: outcome})
	}()

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Monitor error: %v\n", err)
		os.Exit(3)
	}

	m := final.(tui.Model)
	if err := m.SubmitError(); err != nil {
		exitForSubmitError(err)
	}
	if m.WasCancelled() {
		orch.Detach()
		fmt.Printf("Detached from run %s; it keeps running in the background\n", req.RunID)
		return nil
	}

	outcome := m.Outcome()
	if outcome == nil {
		return nil
	}
	printOutcome(*outcome)
	printPostRunChecklist(opts, log)
	if outcome.ExitCode != 0 {
		os.Exit(1)
	}
	return nil
}

// printPostRunChecklist re-evaluates readiness once the run has ended, so the
// user sees the project's launch state reflecting the finished run.
func printPostRunChecklist(opts runOptions, log *logger.Logger) {
	if opts.ProjectPath == "" {
		return
	}

	project, err := config.ParseProject(opts.ProjectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Checklist re-evaluation skipped: %v\n", err)
		return
	}

	var report *diagnostics.Report
	if opts.ReportPath != "" {
		report, err = diagnostics.NewFileSource(opts.ReportPath).GenerateReport(context.Background())
		if err != nil {
			report = nil
		}
	}

	boundary := execution.NewLocalBoundary(opts.EnginePath, opts.OutDir, log)
	steps := readiness.Evaluate(project, report, readiness.Options{ExecutorAvailable: boundary.Available()})
	printChecklistTable(os.Stdout, project.Name, steps, isTerminal(os.Stdout))
}

func printOutcome(outcome orchestrator.Outcome) {
	if outcome.ParseErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not categorize results: %v\n", outcome.ParseErr)
	}
	record := outcome.Record
	if record == nil || record.Errors == nil {
		return
	}

	fmt.Printf("\nRun %s finished with exit code %d\n", outcome.RunID, outcome.ExitCode)
	fmt.Printf("  Fatal:   %d\n", len(record.Errors.Fatal))
	fmt.Printf("  Severe:  %d\n", len(record.Errors.Severe))
	fmt.Printf("  Warning: %d\n", len(record.Errors.Warning))
}
