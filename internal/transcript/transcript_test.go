package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendPreservesArrivalOrder(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.Append("Initializing ")
	tr.Append("zone heat balance\n")
	tr.Append("Warming up")

	require.Equal(t, "Initializing zone heat balance\nWarming up", tr.String())
}

func TestSystemfTagsLines(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.Systemf("Pre-run validation failed (%d issues)", 2)

	lines := tr.Lines()
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "[simprep] ")
	require.Contains(t, lines[0], "Pre-run validation failed (2 issues)")
}

func TestResetClearsBuffer(t *testing.T) {
	t.Parallel()

	tr := New(nil)
	tr.Append("stale output from a previous run")
	tr.Reset()

	require.Empty(t, tr.String())
	require.Nil(t, tr.Lines())
}

func TestNotifyInvokedOnEveryChange(t *testing.T) {
	t.Parallel()

	calls := 0
	tr := New(func() { calls++ })
	tr.Append("chunk")
	tr.Systemf("note")
	tr.Reset()

	require.Equal(t, 3, calls)
}

func TestNilTranscriptIsSafe(t *testing.T) {
	t.Parallel()

	var tr *Transcript
	tr.Append("chunk")
	tr.Systemf("note")
	tr.Reset()
	require.Empty(t, tr.String())
}
