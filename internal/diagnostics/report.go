// Package diagnostics defines the externally-computed project health report
// consumed by the readiness evaluator. The analysis itself happens outside
// this program; this package only models the report and loads it from disk.
package diagnostics

// IssueSeverity classifies a flat diagnostic issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// Issue is one entry in the report's flat issue list.
type Issue struct {
	Severity IssueSeverity `yaml:"severity" json:"severity"`
	Message  string        `yaml:"message" json:"message"`
}

// GeometryTotals summarizes the model geometry.
type GeometryTotals struct {
	Zones int `yaml:"zones" json:"zones"`
}

// GeometrySection reports per-zone and aggregate geometry findings.
type GeometrySection struct {
	Totals GeometryTotals `yaml:"totals" json:"totals"`
	Zones  []ZoneSummary  `yaml:"zones,omitempty" json:"zones,omitempty"`
}

// ZoneSummary is one zone's diagnostic snapshot.
type ZoneSummary struct {
	Name      string  `yaml:"name" json:"name"`
	FloorArea float64 `yaml:"floor_area,omitempty" json:"floor_area,omitempty"`
	Surfaces  int     `yaml:"surfaces,omitempty" json:"surfaces,omitempty"`
}

// ConstructionsSection lists dangling and unused construction references.
type ConstructionsSection struct {
	MissingConstructions []string `yaml:"missing_constructions,omitempty" json:"missing_constructions,omitempty"`
	UnusedConstructions  []string `yaml:"unused_constructions,omitempty" json:"unused_constructions,omitempty"`
}

// MaterialsSection lists dangling and unused material references.
type MaterialsSection struct {
	MissingMaterials []string `yaml:"missing_materials,omitempty" json:"missing_materials,omitempty"`
	UnusedMaterials  []string `yaml:"unused_materials,omitempty" json:"unused_materials,omitempty"`
}

// InconsistentLoad flags a zone load entry the analyzer could not reconcile.
type InconsistentLoad struct {
	Zone  string `yaml:"zone" json:"zone"`
	Issue string `yaml:"issue" json:"issue"`
}

// SchedulesAndLoadsSection reports schedule and internal-gain findings.
type SchedulesAndLoadsSection struct {
	MissingSchedules  []string           `yaml:"missing_schedules,omitempty" json:"missing_schedules,omitempty"`
	InconsistentLoads []InconsistentLoad `yaml:"inconsistent_loads,omitempty" json:"inconsistent_loads,omitempty"`
}

// Report is a structured snapshot of project health. Absence of a report is
// a valid state; every consumer must tolerate a nil Report.
type Report struct {
	Geometry          GeometrySection          `yaml:"geometry" json:"geometry"`
	Constructions     ConstructionsSection     `yaml:"constructions" json:"constructions"`
	Materials         MaterialsSection         `yaml:"materials" json:"materials"`
	SchedulesAndLoads SchedulesAndLoadsSection `yaml:"schedules_and_loads" json:"schedules_and_loads"`
	Issues            []Issue                  `yaml:"issues,omitempty" json:"issues,omitempty"`
}

// HasMissingReferences reports whether any construction or material reference
// is dangling. This is the blocking predicate shared by checklist steps 2 and 6.
func (r *Report) HasMissingReferences() bool {
	if r == nil {
		return false
	}
	return len(r.Constructions.MissingConstructions) > 0 || len(r.Materials.MissingMaterials) > 0
}

// HasScheduleOrLoadIssues reports whether any schedule is missing or any load
// entry is inconsistent.
func (r *Report) HasScheduleOrLoadIssues() bool {
	if r == nil {
		return false
	}
	return len(r.SchedulesAndLoads.MissingSchedules) > 0 || len(r.SchedulesAndLoads.InconsistentLoads) > 0
}

// CountIssues returns the number of flat issues at the given severity.
func (r *Report) CountIssues(severity IssueSeverity) int {
	if r == nil {
		return 0
	}
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}

// HasBlockingIssues reports whether generation should be refused outright:
// any error-severity issue, or dangling construction/material references.
func (r *Report) HasBlockingIssues() bool {
	if r == nil {
		return false
	}
	return r.CountIssues(SeverityError) > 0 || r.HasMissingReferences()
}
