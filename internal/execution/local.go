// Package execution provides the host-side execution boundary: it spawns the
// external simulation engine and streams its lifecycle back as events. The
// orchestrator never touches process mechanics; everything lives here.
package execution

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/simprep/internal/logger"
	"github.com/alexisbeaulieu97/simprep/internal/model"
	"github.com/alexisbeaulieu97/simprep/internal/ports"
)

// recipeArgs maps recipe ids to the engine flags they imply.
var recipeArgs = map[string][]string{
	"annual":     {"-a"},
	"design-day": {"-D"},
	"sizing":     {"-x"},
}

// LocalBoundary implements ports.ExecutionBoundary over os/exec. Events are
// dispatched synchronously to every registered handler from the process's
// reader goroutines; handlers must be fast and must not block.
type LocalBoundary struct {
	enginePath string
	baseDir    string
	log        *logger.Logger

	mu             sync.Mutex
	nextID         int
	outputHandlers map[int]ports.OutputHandler
	exitHandlers   map[int]ports.ExitHandler
}

// NewLocalBoundary creates a boundary that probes enginePath for
// availability and places run outputs under baseDir.
func NewLocalBoundary(enginePath, baseDir string, log *logger.Logger) *LocalBoundary {
	return &LocalBoundary{
		enginePath:     enginePath,
		baseDir:        baseDir,
		log:            log.WithComponent("execution"),
		outputHandlers: make(map[int]ports.OutputHandler),
		exitHandlers:   make(map[int]ports.ExitHandler),
	}
}

// Available reports whether the engine binary is resolvable in this
// environment.
func (b *LocalBoundary) Available() bool {
	if b == nil || b.enginePath == "" {
		return false
	}
	if strings.ContainsRune(b.enginePath, os.PathSeparator) {
		info, err := os.Stat(b.enginePath)
		return err == nil && !info.IsDir()
	}
	_, err := exec.LookPath(b.enginePath)
	return err == nil
}

// OnOutput registers a handler for streamed output payloads.
func (b *LocalBoundary) OnOutput(handler ports.OutputHandler) ports.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.outputHandlers[id] = handler
	return &subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.outputHandlers, id)
	}}
}

// OnExit registers a handler for terminal payloads.
func (b *LocalBoundary) OnExit(handler ports.ExitHandler) ports.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.exitHandlers[id] = handler
	return &subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.exitHandlers, id)
	}}
}

// Run spawns the engine for the given request. The call returns as soon as
// the process has started; output and exit arrive asynchronously through the
// registered handlers. A started run cannot be cancelled.
func (b *LocalBoundary) Run(ctx context.Context, req model.RunRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	outputDir := filepath.Join(b.baseDir, req.RunID)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := append([]string(nil), recipeArgs[req.RecipeID]...)
	args = append(args, "-w", req.EpwPath, "-d", outputDir, req.IdfPath)

	cmd := exec.Command(req.ExecutablePath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attach stdout: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	b.log.WithFields(map[string]any{"run_id": req.RunID, "pid": cmd.Process.Pid}).Info("engine process started")

	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			b.emitOutput(ports.OutputEvent{Chunk: scanner.Text() + "\n", RunID: req.RunID})
		}

		exitCode := 0
		if err := cmd.Wait(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = -1
			}
		}

		b.emitExit(ports.ExitEvent{
			ExitCode:  exitCode,
			RunID:     req.RunID,
			OutputDir: outputDir,
			ErrorLog:  filepath.Join(outputDir, "eplusout.err"),
			Artifacts: listArtifacts(outputDir),
		})
	}()

	return nil
}

func (b *LocalBoundary) emitOutput(event ports.OutputEvent) {
	b.mu.Lock()
	handlers := make([]ports.OutputHandler, 0, len(b.outputHandlers))
	for _, handler := range b.outputHandlers {
		handlers = append(handlers, handler)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (b *LocalBoundary) emitExit(event ports.ExitEvent) {
	b.mu.Lock()
	handlers := make([]ports.ExitHandler, 0, len(b.exitHandlers))
	for _, handler := range b.exitHandlers {
		handlers = append(handlers, handler)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func listArtifacts(outputDir string) []string {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}
	artifacts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			artifacts = append(artifacts, filepath.Join(outputDir, entry.Name()))
		}
	}
	return artifacts
}

type subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
