package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	simpreperrors "github.com/alexisbeaulieu97/simprep/pkg/errors"
)

func defaultRegistryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".simprep", "runs.json"), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func validateRunOptions(opts runOptions) error {
	if strings.TrimSpace(opts.IdfPath) == "" {
		return fmt.Errorf("model file is required (--idf)")
	}
	if strings.TrimSpace(opts.EpwPath) == "" {
		return fmt.Errorf("weather file is required (--epw)")
	}
	if strings.TrimSpace(opts.Name) == "" {
		return fmt.Errorf("run name is required (--name)")
	}

	abs, err := filepath.Abs(opts.IdfPath)
	if err != nil {
		return fmt.Errorf("resolve model path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("model file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("model path %s is a directory", abs)
	}

	return nil
}

// exitForSubmitError maps a submission failure to the documented exit codes:
// 2 for pre-run validation refusals, 3 for environment and launch failures.
func exitForSubmitError(err error) {
	var preflightErr *simpreperrors.PreflightError
	if errors.As(err, &preflightErr) {
		fmt.Fprintf(os.Stderr, "Pre-run validation failed:\n")
		for _, issue := range preflightErr.Issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		os.Exit(2)
	}

	var envErr *simpreperrors.EnvironmentError
	if errors.As(err, &envErr) {
		fmt.Fprintf(os.Stderr, "Environment error: %v\n", err)
		os.Exit(3)
	}

	fmt.Fprintf(os.Stderr, "Launch error: %v\n", err)
	os.Exit(3)
}
