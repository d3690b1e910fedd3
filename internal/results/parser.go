package results

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/simprep/internal/model"
)

// defaultErrorLogName is the engine's conventional error-log file name,
// consulted when the exit event carries no inline log.
const defaultErrorLogName = "eplusout.err"

var (
	markerRegex       = regexp.MustCompile(`\*\*\s*(Fatal|Severe|Warning)\s*\*\*\s*(.*)$`)
	continuationRegex = regexp.MustCompile(`\*\*\s*~~~\s*\*\*\s*(.*)$`)
)

// ParseErrorLog categorizes an engine error log into fatal, severe and
// warning messages. Marker lines ("** Severe  ** ...") are the primary
// signal; continuation lines ("**   ~~~   **") fold into the previous
// message. Plain lines mentioning fatal/severe/warning are classified too,
// since the engine's closing summary and some recipes only emit that form.
func ParseErrorLog(content string) *model.RunErrors {
	errs := &model.RunErrors{}
	if content == "" {
		return errs
	}

	var last *[]string
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if match := markerRegex.FindStringSubmatch(line); match != nil {
			message := strings.TrimSpace(match[2])
			switch match[1] {
			case "Fatal":
				errs.Fatal = append(errs.Fatal, message)
				last = &errs.Fatal
			case "Severe":
				errs.Severe = append(errs.Severe, message)
				last = &errs.Severe
			case "Warning":
				errs.Warning = append(errs.Warning, message)
				last = &errs.Warning
			}
			continue
		}

		if match := continuationRegex.FindStringSubmatch(line); match != nil {
			if last != nil && len(*last) > 0 {
				(*last)[len(*last)-1] += " " + strings.TrimSpace(match[1])
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		switch {
		case strings.Contains(upper, "FATAL"):
			errs.Fatal = append(errs.Fatal, trimmed)
			last = &errs.Fatal
		case strings.Contains(upper, "SEVERE"):
			errs.Severe = append(errs.Severe, trimmed)
			last = &errs.Severe
		case strings.Contains(upper, "WARNING"):
			errs.Warning = append(errs.Warning, trimmed)
			last = &errs.Warning
		default:
			last = nil
		}
	}

	return errs
}

// loadErrorLog resolves the log content for a terminated run: the inline log
// from the exit event wins; otherwise the conventional error file in the
// output directory is read. A missing file yields no errors, not a failure.
func loadErrorLog(input model.ResultInput) string {
	if input.ErrorLog != "" {
		// The inline value may itself be a path handed over by the boundary.
		if looksLikePath(input.ErrorLog) {
			if data, err := os.ReadFile(input.ErrorLog); err == nil {
				return string(data)
			}
		}
		return input.ErrorLog
	}

	if input.OutputDir != "" {
		if data, err := os.ReadFile(filepath.Join(input.OutputDir, defaultErrorLogName)); err == nil {
			return string(data)
		}
	}

	return ""
}

// looksLikePath distinguishes a handed-over file path from inline log
// content: log content spans lines or carries severity markers.
func looksLikePath(value string) bool {
	if strings.ContainsAny(value, "\n\r") {
		return false
	}
	if strings.Contains(value, "**") {
		return false
	}
	return len(value) < 4096
}
