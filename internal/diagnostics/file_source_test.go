package diagnostics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSourceLoadsReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.yaml")
	content := `
geometry:
  totals:
    zones: 3
  zones:
    - name: core
      floor_area: 100
constructions:
  missing_constructions: [ext-roof]
materials:
  missing_materials: []
  unused_materials: [old-brick]
schedules_and_loads:
  missing_schedules: [occupancy]
  inconsistent_loads:
    - zone: core
      issue: lights load references unknown schedule
issues:
  - severity: error
    message: construction ext-roof not defined
  - severity: warning
    message: material old-brick is never used
  - severity: info
    message: 3 zones detected
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	report, err := NewFileSource(path).GenerateReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, report.Geometry.Totals.Zones)
	require.True(t, report.HasMissingReferences())
	require.True(t, report.HasScheduleOrLoadIssues())
	require.True(t, report.HasBlockingIssues())
	require.Equal(t, 1, report.CountIssues(SeverityError))
	require.Equal(t, 1, report.CountIssues(SeverityWarning))
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.yaml")).GenerateReport(context.Background())
	require.Error(t, err)
}

func TestNilReportDegrades(t *testing.T) {
	t.Parallel()

	var report *Report
	require.False(t, report.HasMissingReferences())
	require.False(t, report.HasScheduleOrLoadIssues())
	require.False(t, report.HasBlockingIssues())
	require.Zero(t, report.CountIssues(SeverityError))
}
