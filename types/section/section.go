// Package section defines Sections: runs of enriched track points
// aggregated to approximate a fixed duration.
package section

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/types/trackpoint"
	"time"
)

type Section struct {
	// Anchor is the first point folded into the section.
	// It is a copy of a real enriched point, never a synthetic one.
	Anchor trackpoint.EnrichedPoint

	// End is the point at the last coordinate of Path.
	// Once the next point arrives, this is the continuity point,
	// which is also the anchor of the section that follows.
	End trackpoint.EnrichedPoint

	PointCount     int
	AggSec         int64
	AggDistKm      float64
	AggVelocityKmh *float64

	// Path covers every point folded into the section, plus one continuity point.
	Path orb.LineString

	// IsSkipSingleton marks a section wrapping exactly one skipped (stationary) point.
	IsSkipSingleton bool
}

// NewSkipSingleton wraps a single skip point.
func NewSkipSingleton(p trackpoint.EnrichedPoint) Section {
	return Section{
		Anchor:          p,
		End:             p,
		PointCount:      1,
		Path:            orb.LineString{p.Point()},
		IsSkipSingleton: true,
	}
}

func (s Section) AnchorIndex() int {
	return s.Anchor.Index
}

// LastFoldedIndex is the index of the last point aggregated into the section.
// Folded points are contiguous: a skip point always closes the section before it.
func (s Section) LastFoldedIndex() int {
	return s.Anchor.Index + s.PointCount - 1
}

// Continued reports whether the track went on past this section,
// ie. a continuity point was appended to its path.
func (s Section) Continued() bool {
	return s.End.Index > s.LastFoldedIndex()
}

func (s Section) Duration() time.Duration {
	return time.Duration(s.AggSec) * time.Second
}

// Feature returns the section as a LineString GeoJSON feature.
func (s Section) Feature() *geojson.Feature {
	var f *geojson.Feature
	if len(s.Path) > 1 {
		f = geojson.NewFeature(s.Path)
	} else {
		f = geojson.NewFeature(s.Anchor.Point())
	}
	s.setProperties(f.Properties)
	return f
}

func (s Section) setProperties(props geojson.Properties) {
	props["Anchor_Index"] = s.Anchor.Index
	props["End_Index"] = s.End.Index
	props["Time_Start_Unix"] = s.Anchor.Time.Unix()
	props["Time_Start_RFC3339"] = s.Anchor.Time.Format(time.RFC3339)
	props["RawPointCount"] = s.PointCount
	props["Duration"] = s.AggSec
	props["Distance"] = common.DecimalToFixed(s.AggDistKm, 4)
	props["Skip"] = s.IsSkipSingleton
	if s.AggVelocityKmh != nil {
		props["Velocity"] = common.DecimalToFixed(*s.AggVelocityKmh, 2)
	}
	if s.Anchor.TerrainElevation != nil {
		props["Elevation_Terrain"] = *s.Anchor.TerrainElevation
	}
}

// Properties exposes the section properties for embedding types.
func (s Section) Properties() geojson.Properties {
	props := geojson.Properties{}
	s.setProperties(props)
	return props
}
