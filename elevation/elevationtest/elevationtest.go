// Package elevationtest provides a deterministic elevation.Profiler for tests.
package elevationtest

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/elevation"
)

// Service answers lookups from plain functions.
type Service struct {
	// ElevationFn returns the terrain elevation at lat,lon, or false when unavailable.
	// A nil ElevationFn makes every lookup unavailable.
	ElevationFn func(lat, lon float64) (float64, bool)

	// DistanceFn overrides the haversine distance (km).
	DistanceFn func(lat1, lon1, lat2, lon2 float64) float64

	SpacingM float64

	Lookups int
}

var _ elevation.Profiler = (*Service)(nil)

// Grid returns a Service on a synthetic grid: one degree of latitude is distM meters,
// and elevation rises by eleM meters per degree of latitude from base at lat 0.
// Longitude is ignored, which makes expected values exact in tests.
func Grid(base, eleM, distM float64) *Service {
	return &Service{
		ElevationFn: func(lat, lon float64) (float64, bool) {
			return base + eleM*lat, true
		},
		DistanceFn: func(lat1, lon1, lat2, lon2 float64) float64 {
			return math.Abs(lat2-lat1) * distM / 1000
		},
		SpacingM: distM,
	}
}

func (s *Service) Elevation(lat, lon float64, interpolate bool) (float64, error) {
	s.Lookups++
	if s.ElevationFn == nil {
		return 0, elevation.ErrUnavailable
	}
	ele, ok := s.ElevationFn(lat, lon)
	if !ok {
		return 0, elevation.ErrUnavailable
	}
	return ele, nil
}

func (s *Service) Distance(lat1, lon1, lat2, lon2 float64, slopeCorrected bool) float64 {
	var km float64
	if s.DistanceFn != nil {
		km = s.DistanceFn(lat1, lon1, lat2, lon2)
	} else {
		km = elevation.HaversineKm(lat1, lon1, lat2, lon2)
	}
	if !slopeCorrected {
		return km
	}
	e1, err1 := s.Elevation(lat1, lon1, false)
	e2, err2 := s.Elevation(lat2, lon2, false)
	if err1 != nil || err2 != nil {
		return km
	}
	return elevation.SlopeCorrectedKm(km, e2-e1)
}

func (s *Service) MultiElevations(path orb.LineString, addIntermediate, interpolate bool) (elevation.Profile, error) {
	return elevation.ProfilePath(s, path, addIntermediate, interpolate, s.SpacingM)
}
