// Package transcript provides the append-only text buffer that collects one
// run's streamed output and orchestrator notices. Each orchestrator instance
// owns exactly one transcript; it is reset when a new run starts.
package transcript

import (
	"fmt"
	"strings"
	"sync"
)

// systemPrefix tags lines written by the launcher itself, so they are
// distinguishable from raw simulation output.
const systemPrefix = "[simprep] "

// Transcript is a mutex-guarded append-only buffer. Output chunks are
// concatenated in arrival order with no reordering or coalescing.
type Transcript struct {
	mu     sync.Mutex
	buf    strings.Builder
	notify func()
}

// New creates an empty transcript. notify, when non-nil, is invoked after
// every append so a UI surface can re-render; it runs under no lock.
func New(notify func()) *Transcript {
	return &Transcript{notify: notify}
}

// Append writes a raw output chunk exactly as delivered.
func (t *Transcript) Append(chunk string) {
	if t == nil || chunk == "" {
		return
	}
	t.mu.Lock()
	t.buf.WriteString(chunk)
	t.mu.Unlock()
	t.notifyChanged()
}

// Systemf writes a launcher-tagged line, terminated with a newline.
func (t *Transcript) Systemf(format string, args ...any) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.buf.WriteString(systemPrefix)
	fmt.Fprintf(&t.buf, format, args...)
	t.buf.WriteString("\n")
	t.mu.Unlock()
	t.notifyChanged()
}

// Reset clears the buffer for a new run.
func (t *Transcript) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.buf.Reset()
	t.mu.Unlock()
	t.notifyChanged()
}

// String returns the full transcript contents.
func (t *Transcript) String() string {
	if t == nil {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

// Lines returns the transcript split into lines, without a trailing empty
// entry for a final newline.
func (t *Transcript) Lines() []string {
	content := t.String()
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

func (t *Transcript) notifyChanged() {
	if t.notify != nil {
		t.notify()
	}
}
