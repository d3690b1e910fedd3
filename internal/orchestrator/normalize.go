package orchestrator

import (
	"strconv"

	"github.com/alexisbeaulieu97/simprep/internal/ports"
)

// Event payloads cross the execution boundary in two shapes: structured
// events, and bare legacy values (a string chunk, a numeric exit code).
// Normalization happens here, once, at the boundary; nothing downstream
// touches raw payloads. Malformed payloads never fail: the worst case is an
// empty chunk or an exit code of zero.

func normalizeOutput(payload any) ports.OutputEvent {
	switch v := payload.(type) {
	case ports.OutputEvent:
		return v
	case *ports.OutputEvent:
		if v == nil {
			return ports.OutputEvent{}
		}
		return *v
	case string:
		return ports.OutputEvent{Chunk: v}
	case []byte:
		return ports.OutputEvent{Chunk: string(v)}
	case map[string]any:
		return ports.OutputEvent{
			Chunk: stringField(v, "chunk"),
			RunID: stringField(v, "run_id"),
		}
	default:
		return ports.OutputEvent{}
	}
}

func normalizeExit(payload any) ports.ExitEvent {
	switch v := payload.(type) {
	case ports.ExitEvent:
		return v
	case *ports.ExitEvent:
		if v == nil {
			return ports.ExitEvent{}
		}
		return *v
	case map[string]any:
		return ports.ExitEvent{
			ExitCode:  intField(v, "exit_code"),
			RunID:     stringField(v, "run_id"),
			OutputDir: stringField(v, "output_dir"),
			ErrorLog:  stringField(v, "error_log"),
			Artifacts: stringSliceField(v, "artifacts"),
		}
	default:
		return ports.ExitEvent{ExitCode: coerceExitCode(payload)}
	}
}

// coerceExitCode turns a bare legacy exit value into an int. Absent or
// non-numeric values default to zero.
func coerceExitCode(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
		return 0
	default:
		return 0
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func intField(m map[string]any, key string) int {
	value, ok := m[key]
	if !ok {
		return 0
	}
	return coerceExitCode(value)
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		if direct, ok := m[key].([]string); ok {
			return direct
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
