package config

// Project is the externally-owned settings aggregate for one building-energy
// model. Every sub-structure is optional; the readiness evaluator treats a
// loaded Project as an immutable snapshot and degrades gracefully around
// missing sections. Editing the project is the job of external tooling.
type Project struct {
	Name        string `yaml:"name" validate:"required,min=1,max=100"`
	Description string `yaml:"description,omitempty"`

	Weather           *Weather           `yaml:"weather,omitempty"`
	Geometry          *Geometry          `yaml:"geometry,omitempty"`
	Constructions     []Construction     `yaml:"constructions,omitempty" validate:"omitempty,dive"`
	Materials         []Material         `yaml:"materials,omitempty" validate:"omitempty,dive"`
	Schedules         []Schedule         `yaml:"schedules,omitempty" validate:"omitempty,dive"`
	ZoneLoads         []ZoneLoad         `yaml:"zone_loads,omitempty" validate:"omitempty,dive"`
	Thermostats       []Thermostat       `yaml:"thermostats,omitempty" validate:"omitempty,dive"`
	IdealLoads        *IdealLoads        `yaml:"ideal_loads,omitempty"`
	SimulationControl *SimulationControl `yaml:"simulation_control,omitempty"`
}

// Weather holds the weather file reference and the optional custom site.
type Weather struct {
	FilePath          string    `yaml:"file_path,omitempty"`
	UseCustomLocation bool      `yaml:"use_custom_location,omitempty"`
	Location          *Location `yaml:"location,omitempty"`
}

// Location describes a custom simulation site. Ranges follow the usual
// geographic conventions; time zone is the UTC offset in hours.
// Incomplete locations load fine; the readiness evaluator reports them as
// checklist state rather than a load failure. Present values must still be
// in range.
type Location struct {
	Name      string   `yaml:"name,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty" validate:"omitempty,latitude_range"`
	Longitude *float64 `yaml:"longitude,omitempty" validate:"omitempty,longitude_range"`
	TimeZone  *float64 `yaml:"time_zone,omitempty" validate:"omitempty,timezone_range"`
	Elevation *float64 `yaml:"elevation,omitempty" validate:"omitempty,finite"`
}

// Geometry lists the thermal zones declared by the model.
type Geometry struct {
	Zones []Zone `yaml:"zones,omitempty" validate:"omitempty,dive"`
}

// Zone is a single thermal zone.
type Zone struct {
	Name      string  `yaml:"name" validate:"required"`
	FloorArea float64 `yaml:"floor_area,omitempty" validate:"omitempty,min=0"`
	Volume    float64 `yaml:"volume,omitempty" validate:"omitempty,min=0"`
}

// Construction is a named assembly of material layers.
type Construction struct {
	Name   string   `yaml:"name" validate:"required"`
	Layers []string `yaml:"layers,omitempty"`
}

// Material is a named opaque or glazing material.
type Material struct {
	Name         string  `yaml:"name" validate:"required"`
	Thickness    float64 `yaml:"thickness,omitempty" validate:"omitempty,gt=0"`
	Conductivity float64 `yaml:"conductivity,omitempty" validate:"omitempty,gt=0"`
}

// Schedule is a named schedule referenced by loads and thermostats.
type Schedule struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type,omitempty"`
}

// ZoneLoad is one explicit internal-gain entry for a zone.
type ZoneLoad struct {
	Zone         string  `yaml:"zone" validate:"required"`
	Kind         string  `yaml:"kind" validate:"required,oneof=people lights equipment infiltration"`
	Schedule     string  `yaml:"schedule,omitempty"`
	DesignLevel  float64 `yaml:"design_level,omitempty" validate:"omitempty,min=0"`
	PerFloorArea float64 `yaml:"per_floor_area,omitempty" validate:"omitempty,min=0"`
}

// Thermostat pairs a zone with heating and cooling setpoint schedules.
type Thermostat struct {
	Zone            string   `yaml:"zone" validate:"required"`
	HeatingSetpoint *float64 `yaml:"heating_setpoint,omitempty"`
	CoolingSetpoint *float64 `yaml:"cooling_setpoint,omitempty"`
	HeatingSchedule string   `yaml:"heating_schedule,omitempty"`
	CoolingSchedule string   `yaml:"cooling_schedule,omitempty"`
}

// IdealLoads configures ideal-loads air systems, either globally or per zone.
type IdealLoads struct {
	Global  *IdealLoadsSettings           `yaml:"global,omitempty"`
	PerZone map[string]IdealLoadsSettings `yaml:"per_zone,omitempty"`
}

// Configured reports whether any ideal-loads configuration exists.
func (il *IdealLoads) Configured() bool {
	if il == nil {
		return false
	}
	return il.Global != nil || len(il.PerZone) > 0
}

// IdealLoadsSettings are the knobs for one ideal-loads air system.
type IdealLoadsSettings struct {
	HeatingLimit float64 `yaml:"heating_limit,omitempty" validate:"omitempty,min=0"`
	CoolingLimit float64 `yaml:"cooling_limit,omitempty" validate:"omitempty,min=0"`
	OutdoorAir   bool    `yaml:"outdoor_air,omitempty"`
}

// SimulationControl holds solver-level toggles passed through to the input
// file generator.
type SimulationControl struct {
	RunPeriodBegin string `yaml:"run_period_begin,omitempty"`
	RunPeriodEnd   string `yaml:"run_period_end,omitempty"`
	Timesteps      int    `yaml:"timesteps,omitempty" validate:"omitempty,min=1,max=60"`
	DoSizing       bool   `yaml:"do_sizing,omitempty"`
}

// ZoneCount returns the number of zones declared in the project geometry.
func (p *Project) ZoneCount() int {
	if p == nil || p.Geometry == nil {
		return 0
	}
	return len(p.Geometry.Zones)
}

// WeatherPath returns the configured weather file path, if any.
func (p *Project) WeatherPath() string {
	if p == nil || p.Weather == nil {
		return ""
	}
	return p.Weather.FilePath
}
