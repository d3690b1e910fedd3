package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	simpreperrors "github.com/alexisbeaulieu97/simprep/pkg/errors"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseProjectMinimal(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `
name: office-baseline
`)

	project, err := ParseProject(path)
	require.NoError(t, err)
	require.Equal(t, "office-baseline", project.Name)
	require.Nil(t, project.Weather)
	require.Zero(t, project.ZoneCount())
	require.Empty(t, project.WeatherPath())
}

func TestParseProjectFull(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `
name: office-baseline
weather:
  file_path: weather/chicago.epw
  use_custom_location: true
  location:
    name: Chicago OHare
    latitude: 41.98
    longitude: -87.92
    time_zone: -6
    elevation: 201.0
geometry:
  zones:
    - name: core
      floor_area: 120.5
    - name: perimeter
constructions:
  - name: ext-wall
    layers: [brick, insulation, gypsum]
materials:
  - name: brick
    thickness: 0.1
    conductivity: 0.89
schedules:
  - name: occupancy
    type: fraction
zone_loads:
  - zone: core
    kind: lights
    schedule: occupancy
    design_level: 400
thermostats:
  - zone: core
    heating_schedule: htg-sched
    cooling_schedule: clg-sched
ideal_loads:
  global:
    outdoor_air: true
simulation_control:
  timesteps: 6
`)

	project, err := ParseProject(path)
	require.NoError(t, err)
	require.Equal(t, 2, project.ZoneCount())
	require.Equal(t, "weather/chicago.epw", project.WeatherPath())
	require.True(t, project.Weather.UseCustomLocation)
	require.NotNil(t, project.Weather.Location)
	require.InDelta(t, 41.98, *project.Weather.Location.Latitude, 0.001)
	require.True(t, project.IdealLoads.Configured())
	require.Len(t, project.ZoneLoads, 1)
}

func TestParseProjectRejectsOutOfRangeLatitude(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `
name: bad-site
weather:
  use_custom_location: true
  location:
    name: nowhere
    latitude: 123.0
    longitude: 10.0
    time_zone: 1.0
    elevation: 0.0
`)

	_, err := ParseProject(path)
	require.Error(t, err)

	var validationErr *simpreperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Field, "Latitude")
}

func TestParseProjectRejectsUnknownLoadKind(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, `
name: bad-load
zone_loads:
  - zone: core
    kind: plasma
`)

	_, err := ParseProject(path)
	require.Error(t, err)

	var validationErr *simpreperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseProjectMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseProject(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var parseErr *simpreperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseProjectMalformedYAML(t *testing.T) {
	t.Parallel()

	path := writeProjectFile(t, "name: [unclosed")

	_, err := ParseProject(path)
	require.Error(t, err)

	var parseErr *simpreperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestIdealLoadsConfigured(t *testing.T) {
	t.Parallel()

	var nilLoads *IdealLoads
	require.False(t, nilLoads.Configured())
	require.False(t, (&IdealLoads{}).Configured())
	require.True(t, (&IdealLoads{Global: &IdealLoadsSettings{}}).Configured())
	require.True(t, (&IdealLoads{PerZone: map[string]IdealLoadsSettings{"core": {}}}).Configured())
}
