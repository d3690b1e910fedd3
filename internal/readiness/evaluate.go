// Package readiness derives the seven-step go/no-go checklist from the
// project configuration and an optional diagnostic report. Evaluation is a
// pure function over its inputs: no I/O, no side effects, and identical
// inputs always yield identical steps.
package readiness

import (
	"fmt"
	"math"

	"github.com/alexisbeaulieu97/simprep/internal/config"
	"github.com/alexisbeaulieu97/simprep/internal/diagnostics"
	"github.com/alexisbeaulieu97/simprep/internal/model"
)

// Options carries environment signals the evaluator cannot probe itself.
type Options struct {
	// ExecutorAvailable reports whether the execution boundary is reachable
	// in the host environment. When false, artifact generation stays possible
	// but a direct run is not (checklist step 7 degrades to warning).
	ExecutorAvailable bool
}

// StepCount is the fixed number of checklist steps.
const StepCount = 7

// Evaluate produces the readiness checklist. The report may be nil (analysis
// unavailable); every report-dependent check then degrades to its
// configuration-derived branch. The step order is fixed and stable.
func Evaluate(project *config.Project, report *diagnostics.Report, opts Options) []model.ChecklistStep {
	steps := make([]model.ChecklistStep, 0, StepCount)
	steps = append(steps, evaluateGeometry(project, report))
	steps = append(steps, evaluateConstructions(project, report))
	steps = append(steps, evaluateSchedulesAndLoads(project, report))
	steps = append(steps, evaluateThermostats(project))
	steps = append(steps, evaluateWeather(project))
	steps = append(steps, evaluateGeneration(report))
	steps = append(steps, evaluateRunReadiness(project, report, opts, steps))
	return steps
}

func evaluateGeometry(project *config.Project, report *diagnostics.Report) model.ChecklistStep {
	step := model.ChecklistStep{ID: "geometry", Label: "1. Geometry"}

	zones := project.ZoneCount()
	if report != nil && report.Geometry.Totals.Zones > 0 {
		zones = report.Geometry.Totals.Zones
	}

	if zones > 0 {
		step.Status = model.StatusOK
		step.Description = fmt.Sprintf("%d thermal zone(s) defined", zones)
		return step
	}

	// Zero zones never blocks: generation falls back to one default zone.
	step.Status = model.StatusWarning
	step.Description = "no thermal zones defined; generation will fall back to a single default zone"
	step.Actions = []model.StepAction{{Label: "Open geometry", ActionID: "open-geometry"}}
	return step
}

func evaluateConstructions(project *config.Project, report *diagnostics.Report) model.ChecklistStep {
	step := model.ChecklistStep{ID: "constructions", Label: "2. Constructions & Materials"}

	if report.HasMissingReferences() {
		step.Status = model.StatusError
		step.Description = describeMissingReferences(report)
		step.Actions = []model.StepAction{
			{Label: "Open constructions", ActionID: "open-constructions"},
			{Label: "Open materials", ActionID: "open-materials"},
		}
		return step
	}

	declared := 0
	if project != nil {
		declared = len(project.Constructions) + len(project.Materials)
	}
	if declared > 0 {
		step.Status = model.StatusOK
		step.Description = fmt.Sprintf("%d construction/material definition(s)", declared)
		return step
	}

	step.Status = model.StatusWarning
	step.Description = "no constructions or materials declared; built-in defaults will be used"
	step.Actions = []model.StepAction{{Label: "Open constructions", ActionID: "open-constructions"}}
	return step
}

func describeMissingReferences(report *diagnostics.Report) string {
	missing := len(report.Constructions.MissingConstructions) + len(report.Materials.MissingMaterials)
	first := ""
	if len(report.Constructions.MissingConstructions) > 0 {
		first = report.Constructions.MissingConstructions[0]
	} else if len(report.Materials.MissingMaterials) > 0 {
		first = report.Materials.MissingMaterials[0]
	}
	return fmt.Sprintf("%d unresolved construction/material reference(s), first: %s", missing, first)
}

func evaluateSchedulesAndLoads(project *config.Project, report *diagnostics.Report) model.ChecklistStep {
	step := model.ChecklistStep{ID: "schedules", Label: "3. Schedules & Zone Loads"}

	if report.HasScheduleOrLoadIssues() {
		missing := len(report.SchedulesAndLoads.MissingSchedules)
		inconsistent := len(report.SchedulesAndLoads.InconsistentLoads)
		step.Status = model.StatusWarning
		step.Description = fmt.Sprintf("%d missing schedule(s), %d inconsistent load entr(ies)", missing, inconsistent)
		step.Actions = []model.StepAction{
			{Label: "Open schedules", ActionID: "open-schedules"},
			{Label: "Open zone loads", ActionID: "open-zone-loads"},
		}
		return step
	}

	if project != nil && len(project.ZoneLoads) > 0 {
		step.Status = model.StatusOK
		step.Description = fmt.Sprintf("%d explicit zone load entr(ies)", len(project.ZoneLoads))
		return step
	}

	step.Status = model.StatusWarning
	step.Description = "no explicit internal gains; zones will simulate without loads"
	step.Actions = []model.StepAction{{Label: "Open zone loads", ActionID: "open-zone-loads"}}
	return step
}

func evaluateThermostats(project *config.Project) model.ChecklistStep {
	step := model.ChecklistStep{ID: "thermostats", Label: "4. Thermostats & Ideal Loads"}

	hasThermostats := project != nil && len(project.Thermostats) > 0
	hasIdealLoads := project != nil && project.IdealLoads.Configured()

	if hasThermostats && hasIdealLoads {
		step.Status = model.StatusOK
		step.Description = "thermostats and ideal-loads systems configured"
		return step
	}

	// Unconditioned zones are legitimate, so this never escalates to error.
	step.Status = model.StatusWarning
	switch {
	case !hasThermostats && !hasIdealLoads:
		step.Description = "no thermostats or ideal-loads configuration; zone temperatures will float"
	case !hasThermostats:
		step.Description = "no thermostats configured; setpoints are undefined"
	default:
		step.Description = "no ideal-loads configuration; conditioning is undefined"
	}
	step.Actions = []model.StepAction{
		{Label: "Open thermostats", ActionID: "open-thermostats"},
		{Label: "Open ideal loads", ActionID: "open-ideal-loads"},
	}
	return step
}

func evaluateWeather(project *config.Project) model.ChecklistStep {
	step := model.ChecklistStep{ID: "weather", Label: "5. Weather & Location"}
	openWeather := []model.StepAction{{Label: "Open weather", ActionID: "open-weather"}}

	if project.WeatherPath() == "" {
		step.Status = model.StatusError
		step.Description = "no weather file selected"
		step.Actions = openWeather
		return step
	}

	if project.Weather.UseCustomLocation {
		if problem := validateLocation(project.Weather.Location); problem != "" {
			step.Status = model.StatusError
			step.Description = "custom location is invalid: " + problem
			step.Actions = openWeather
			return step
		}
	}

	step.Status = model.StatusOK
	step.Description = "weather file " + project.WeatherPath()
	return step
}

func validateLocation(loc *config.Location) string {
	if loc == nil {
		return "no site defined"
	}
	if loc.Name == "" {
		return "site name is missing"
	}
	if loc.Latitude == nil || *loc.Latitude < -90 || *loc.Latitude > 90 {
		return "latitude must be between -90 and 90"
	}
	if loc.Longitude == nil || *loc.Longitude < -180 || *loc.Longitude > 180 {
		return "longitude must be between -180 and 180"
	}
	if loc.TimeZone == nil || *loc.TimeZone < -12 || *loc.TimeZone > 14 {
		return "time zone must be between -12 and 14"
	}
	if loc.Elevation == nil || math.IsNaN(*loc.Elevation) || math.IsInf(*loc.Elevation, 0) {
		return "elevation must be a finite number"
	}
	return ""
}

func evaluateGeneration(report *diagnostics.Report) model.ChecklistStep {
	step := model.ChecklistStep{ID: "generation", Label: "6. Input File Generation"}

	if report.HasBlockingIssues() {
		step.Status = model.StatusError
		step.Description = fmt.Sprintf("%d blocking issue(s) reported by diagnostics", report.CountIssues(diagnostics.SeverityError))
		if report.HasMissingReferences() {
			step.Description = "unresolved references block input file generation"
		}
		step.Actions = []model.StepAction{{Label: "Open diagnostics", ActionID: "open-diagnostics"}}
		return step
	}

	if report.CountIssues(diagnostics.SeverityWarning) > 0 || report.HasScheduleOrLoadIssues() {
		step.Status = model.StatusWarning
		step.Description = fmt.Sprintf("%d diagnostic warning(s); generation will proceed", report.CountIssues(diagnostics.SeverityWarning))
		step.Actions = []model.StepAction{{Label: "Open diagnostics", ActionID: "open-diagnostics"}}
		return step
	}

	step.Status = model.StatusOK
	step.Description = "ready to generate the solver input file"
	return step
}

func evaluateRunReadiness(project *config.Project, report *diagnostics.Report, opts Options, prior []model.ChecklistStep) model.ChecklistStep {
	step := model.ChecklistStep{ID: "run", Label: "7. Run Simulation"}

	if project.WeatherPath() == "" {
		step.Status = model.StatusError
		step.Description = "cannot run without a weather file"
		step.Actions = []model.StepAction{{Label: "Open weather", ActionID: "open-weather"}}
		return step
	}

	if report.HasBlockingIssues() {
		step.Status = model.StatusError
		step.Description = "diagnostics report blocking issues; resolve them before running"
		step.Actions = []model.StepAction{{Label: "Open diagnostics", ActionID: "open-diagnostics"}}
		return step
	}

	if !opts.ExecutorAvailable {
		step.Status = model.StatusWarning
		step.Description = "simulation engine not reachable; input files can be generated but a direct run is not possible"
		step.Actions = []model.StepAction{{Label: "Configure engine", ActionID: "open-engine-settings"}}
		return step
	}

	for _, previous := range prior {
		if previous.Status == model.StatusWarning {
			step.Status = model.StatusWarning
			step.Description = "runnable, but earlier checklist steps carry warnings"
			return step
		}
	}

	step.Status = model.StatusOK
	step.Description = "ready to run"
	return step
}
