package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/simprep/internal/model"
)

func TestRunCommandParsesFlags(t *testing.T) {
	original := runCmdRunner
	t.Cleanup(func() { runCmdRunner = original })

	var captured runOptions
	runCmdRunner = func(opts runOptions) error {
		captured = opts
		return nil
	}

	root := newRootCmd()
	root.SetArgs([]string{
		"run", "project.yaml",
		"--idf", "model.idf",
		"--epw", "denver.epw",
		"--engine", "/opt/ep/energyplus",
		"--recipe", "design-day",
		"--name", "office",
		"--report", "report.yaml",
		"--out", "/tmp/runs",
		"--registry", "/tmp/runs.json",
		"--plain",
	})

	require.NoError(t, root.Execute())
	require.Equal(t, "project.yaml", captured.ProjectPath)
	require.Equal(t, "model.idf", captured.IdfPath)
	require.Equal(t, "report.yaml", captured.ReportPath)
	require.Equal(t, "denver.epw", captured.EpwPath)
	require.Equal(t, "/opt/ep/energyplus", captured.EnginePath)
	require.Equal(t, "design-day", captured.Recipe)
	require.Equal(t, "office", captured.Name)
	require.Equal(t, "/tmp/runs", captured.OutDir)
	require.Equal(t, "/tmp/runs.json", captured.RegistryPath)
	require.True(t, captured.Plain)
}

func TestValidateRunOptions(t *testing.T) {
	dir := t.TempDir()
	idfPath := filepath.Join(dir, "model.idf")
	require.NoError(t, os.WriteFile(idfPath, []byte("Version,25.1;\n"), 0o644))

	valid := runOptions{IdfPath: idfPath, EpwPath: "denver.epw", Name: "office"}
	require.NoError(t, validateRunOptions(valid))

	tests := []struct {
		name    string
		opts    runOptions
		wantErr string
	}{
		{"missing idf", runOptions{EpwPath: "denver.epw", Name: "office"}, "model file is required"},
		{"missing epw", runOptions{IdfPath: idfPath, Name: "office"}, "weather file is required"},
		{"missing name", runOptions{IdfPath: idfPath, EpwPath: "denver.epw"}, "run name is required"},
		{"idf does not exist", runOptions{IdfPath: filepath.Join(dir, "nope.idf"), EpwPath: "denver.epw", Name: "office"}, "does not exist"},
		{"idf is a directory", runOptions{IdfPath: dir, EpwPath: "denver.epw", Name: "office"}, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRunOptions(tt.opts)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrintRecords(t *testing.T) {
	records := []model.RunRecord{
		{
			RunID:     "office-1724800000000000000-1",
			Label:     "office",
			RecipeID:  "annual",
			Status:    model.RunStatusExited,
			ExitCode:  1,
			StartedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			RunID:     "lab-1724800000000000001-2",
			Label:     "lab",
			RecipeID:  "sizing",
			Status:    model.RunStatusPending,
			StartedAt: time.Date(2026, 8, 28, 9, 5, 0, 0, time.UTC),
		},
	}

	buf := &bytes.Buffer{}
	printRecords(buf, records)

	output := buf.String()
	require.Contains(t, output, "office-1724800000000000000-1")
	require.Contains(t, output, "annual")
	require.Contains(t, output, "pending")
	require.Contains(t, output, "exited")
}

func TestPrintRecordsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	printRecords(buf, nil)
	require.Contains(t, buf.String(), "No runs recorded yet")
}
