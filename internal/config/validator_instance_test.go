package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetValidatorReturnsSharedInstance(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	require.Same(t, v1, v2)
}

func TestCustomRangeRules(t *testing.T) {
	v := GetValidator()

	type site struct {
		Latitude  float64 `validate:"latitude_range"`
		Longitude float64 `validate:"longitude_range"`
		TimeZone  float64 `validate:"timezone_range"`
		Elevation float64 `validate:"finite"`
	}

	require.NoError(t, v.Struct(site{Latitude: 39.7, Longitude: -104.9, TimeZone: -7, Elevation: 1650}))
	require.Error(t, v.Struct(site{Latitude: 91}))
	require.Error(t, v.Struct(site{Longitude: -181}))
	require.Error(t, v.Struct(site{TimeZone: 15}))
	require.Error(t, v.Struct(site{Elevation: math.Inf(1)}))
	require.Error(t, v.Struct(site{Elevation: math.NaN()}))
}
