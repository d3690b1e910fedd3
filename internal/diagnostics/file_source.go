package diagnostics

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	simpreperrors "github.com/alexisbeaulieu97/simprep/pkg/errors"
)

// FileSource loads a report produced by an external analyzer from disk. It
// implements ports.ReportSource.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given report path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// GenerateReport reads and decodes the report file. Callers treat any error
// as "no diagnostics available" and degrade rather than fail.
func (s *FileSource) GenerateReport(ctx context.Context) (*Report, error) {
	if s == nil || s.path == "" {
		return nil, simpreperrors.NewParseError("", os.ErrNotExist)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, simpreperrors.NewParseError(s.path, err)
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, simpreperrors.NewParseError(s.path, err)
	}

	return &report, nil
}
