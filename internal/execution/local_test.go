package execution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/simprep/internal/logger"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/ports"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "error"})
	require.NoError(t, err)
	return log
}

// fakeEngine writes a script that mimics the engine: prints a line and exits
// with the given code.
func fakeEngine(t *testing.T, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fake engine")
	}
	path := filepath.Join(t.TempDir(), "engine.sh")
	script := fmt.Sprintf("#!/bin/sh\necho \"EnergyPlus Starting\"\nexit %d\n", exitCode)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestAvailableProbesEnginePath(t *testing.T) {
	t.Parallel()

	log := testLogger(t)
	require.False(t, NewLocalBoundary("", t.TempDir(), log).Available())
	require.False(t, NewLocalBoundary(filepath.Join(t.TempDir(), "missing"), t.TempDir(), log).Available())
	require.False(t, NewLocalBoundary("not-a-real-engine-name", t.TempDir(), log).Available())
	require.True(t, NewLocalBoundary(fakeEngine(t, 0), t.TempDir(), log).Available())
}

func TestRunStreamsOutputAndExit(t *testing.T) {
	t.Parallel()

	engine := fakeEngine(t, 3)
	baseDir := t.TempDir()
	boundary := NewLocalBoundary(engine, baseDir, testLogger(t))

	outputs := make(chan ports.OutputEvent, 16)
	exits := make(chan ports.ExitEvent, 1)
	boundary.OnOutput(func(payload any) {
		if ev, ok := payload.(ports.OutputEvent); ok {
			outputs <- ev
		}
	})
	boundary.OnExit(func(payload any) {
		if ev, ok := payload.(ports.ExitEvent); ok {
			exits <- ev
		}
	})

	req := model.RunRequest{
		IdfPath:        "model.idf",
		EpwPath:        "site.epw",
		ExecutablePath: engine,
		RecipeID:       "annual",
		RunName:        "baseline",
		RunID:          "r-test",
	}
	require.NoError(t, boundary.Run(context.Background(), req))

	select {
	case exit := <-exits:
		require.Equal(t, 3, exit.ExitCode)
		require.Equal(t, "r-test", exit.RunID)
		require.Equal(t, filepath.Join(baseDir, "r-test"), exit.OutputDir)
		require.Equal(t, filepath.Join(baseDir, "r-test", "eplusout.err"), exit.ErrorLog)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for exit event")
	}

	select {
	case out := <-outputs:
		require.Equal(t, "r-test", out.RunID)
		require.Contains(t, out.Chunk, "EnergyPlus Starting")
	default:
		t.Fatal("expected at least one output event")
	}

	// The per-run output directory is created up front.
	info, err := os.Stat(filepath.Join(baseDir, "r-test"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	boundary := NewLocalBoundary("engine", t.TempDir(), testLogger(t))

	received := 0
	sub := boundary.OnOutput(func(any) { received++ })
	boundary.emitOutput(ports.OutputEvent{Chunk: "one"})

	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	boundary.emitOutput(ports.OutputEvent{Chunk: "two"})

	require.Equal(t, 1, received)
}

func TestRunRejectsCancelledContext(t *testing.T) {
	t.Parallel()

	boundary := NewLocalBoundary("engine", t.TempDir(), testLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := boundary.Run(ctx, model.RunRequest{RunID: "r"})
	require.Error(t, err)
}

func TestRunFailsWhenEngineMissing(t *testing.T) {
	t.Parallel()

	boundary := NewLocalBoundary("missing", t.TempDir(), testLogger(t))
	req := model.RunRequest{
		ExecutablePath: filepath.Join(t.TempDir(), "missing-engine"),
		RunID:          "r",
	}
	err := boundary.Run(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "start engine")
}
