// Package profile computes elevation profiles over sections, and terrain
// elevation statistics over enriched points.
package profile

import (
	"errors"
	"log/slog"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// SectionProfile is the ascent and descent along one section's path,
// sampled once at the path's vertices and once with intermediate points.
// Nil values are unavailable.
type SectionProfile struct {
	AnchorIndex int

	Samples int
	Ascent  *float64
	Descent *float64

	SamplesIntermediate int
	AscentIntermediate  *float64
	DescentIntermediate *float64
}

// Profile sums the section profiles. Totals use the intermediate-point variant.
type Profile struct {
	Sections []SectionProfile

	TotalAscentM  float64
	TotalDescentM float64

	// ProfiledKm is the path distance covered by the intermediate-point profiles.
	ProfiledKm float64

	// Unavailable counts the sections whose profile could not be resolved.
	Unavailable int
}

// Sections profiles every non-singleton section through svc.
// Sections whose lookups fail are reported as unavailable and left out of the totals;
// only errors other than elevation.ErrUnavailable are returned.
func Sections(svc elevation.Profiler, sections []section.Section, interpolate bool) (Profile, error) {
	out := Profile{Sections: make([]SectionProfile, 0, len(sections))}
	for _, s := range sections {
		if s.IsSkipSingleton {
			continue
		}
		sp := SectionProfile{AnchorIndex: s.AnchorIndex()}

		plain, err := svc.MultiElevations(s.Path, false, interpolate)
		if err != nil && !errors.Is(err, elevation.ErrUnavailable) {
			return out, err
		}
		if err == nil {
			sp.Samples = len(plain.Elevations)
			sp.Ascent, sp.Descent = common.Float64(plain.Ascent), common.Float64(plain.Descent)
		}

		dense, err := svc.MultiElevations(s.Path, true, interpolate)
		if err != nil && !errors.Is(err, elevation.ErrUnavailable) {
			return out, err
		}
		if err == nil {
			sp.SamplesIntermediate = len(dense.Elevations)
			sp.AscentIntermediate, sp.DescentIntermediate = common.Float64(dense.Ascent), common.Float64(dense.Descent)
			out.TotalAscentM += dense.Ascent
			out.TotalDescentM += dense.Descent
			out.ProfiledKm += dense.DistanceKm
		} else {
			out.Unavailable++
			slog.Debug("Section profile unavailable", "anchor", s.AnchorIndex())
		}
		out.Sections = append(out.Sections, sp)
	}
	return out, nil
}

// ElevationStats summarises terrain elevations over a track.
// Values are nil when no point had a terrain elevation.
type ElevationStats struct {
	Samples int
	Min     *float64
	Max     *float64
	Mean    *float64
	Median  *float64

	// DeviceMeanAbsDiff is the mean absolute difference between device
	// and terrain elevations, over points that have both.
	DeviceMeanAbsDiff *float64
}

func statOrNil(fn func() (float64, error)) *float64 {
	v, err := fn()
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return common.Float64(v)
}

func Elevations(points trackpoint.EnrichedPoints) ElevationStats {
	var terrain, diffs []float64
	for _, p := range points {
		if p.TerrainElevation == nil {
			continue
		}
		terrain = append(terrain, *p.TerrainElevation)
		if p.DeviceElevation != nil {
			diffs = append(diffs, math.Abs(*p.DeviceElevation-*p.TerrainElevation))
		}
	}
	data := stats.Float64Data(terrain)
	st := ElevationStats{Samples: len(terrain)}
	if len(terrain) == 0 {
		return st
	}
	st.Min = statOrNil(data.Min)
	st.Max = statOrNil(data.Max)
	st.Mean = statOrNil(data.Mean)
	st.Median = statOrNil(data.Median)
	if len(diffs) > 0 {
		st.DeviceMeanAbsDiff = statOrNil(stats.Float64Data(diffs).Mean)
	}
	return st
}
