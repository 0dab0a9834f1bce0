// Package hill defines hill segments: runs of consecutive sections
// sharing one elevation-trend direction.
package hill

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/types/section"
	"strconv"
	"time"
)

// Segment extends the Section its run starts from.
type Segment struct {
	section.Section

	// Direction is the shared elevation-trend sign of the run: +1 up, -1 down, 0 flat or unknown.
	Direction int

	RowCount    int
	Sec         int64
	DistKm      float64
	DistM       int
	VelocityKmh *float64

	// ElevationDeltaM is end minus start terrain elevation,
	// nil if either boundary elevation is unavailable.
	ElevationDeltaM *float64

	EndIndex int
	EndPoint orb.Point

	// GradePercent is ElevationDeltaM / DistM * 100, rounded.
	// Nil when the distance is zero or the elevation delta is unavailable.
	GradePercent *float64

	// Locality is an optional human place name for the start of the hill.
	Locality string
}

// Line returns the hill's line from its start anchor to its end boundary.
// Only the anchor section's path is carried, so this is the coarse shape.
func (s Segment) Line() orb.LineString {
	ls := orb.LineString{s.Anchor.Point()}
	ls = append(ls, s.EndPoint)
	return ls
}

func (s Segment) Feature() *geojson.Feature {
	f := geojson.NewFeature(s.Line())
	f.Properties = s.Section.Properties()
	f.Properties["Hill_Direction"] = s.Direction
	f.Properties["Hill_Rows"] = s.RowCount
	f.Properties["Hill_Duration"] = s.Sec
	f.Properties["Hill_Distance"] = common.DecimalToFixed(s.DistKm, 4)
	f.Properties["Hill_Distance_M"] = s.DistM
	f.Properties["Hill_End_Index"] = s.EndIndex
	if s.VelocityKmh != nil {
		f.Properties["Hill_Velocity"] = common.DecimalToFixed(*s.VelocityKmh, 2)
	}
	if s.ElevationDeltaM != nil {
		f.Properties["Hill_Elevation_Delta"] = common.DecimalToFixed(*s.ElevationDeltaM, 1)
	}
	if s.GradePercent != nil {
		f.Properties["Hill_Grade"] = *s.GradePercent
	}
	if s.Locality != "" {
		f.Properties["Locality"] = s.Locality
	}
	return f
}

// Arrow renders an elevation delta the way a profile table does, eg. ↗40 or ↘12.
func Arrow(delta *float64) string {
	if delta == nil {
		return "?"
	}
	d := common.Round(*delta)
	switch {
	case d > 0:
		return "↗" + strconv.Itoa(d)
	case d < 0:
		return "↘" + strconv.Itoa(-d)
	}
	return "→0"
}

// Record is the compact, storable form of a Segment.
// Segments embed full enriched points, which are not meant to round-trip through JSON.
type Record struct {
	TrackID     string    `json:"track"`
	AnchorIndex int       `json:"anchor"`
	Start       time.Time `json:"start"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	EndLat      float64   `json:"end_lat"`
	EndLon      float64   `json:"end_lon"`

	Direction       int      `json:"direction"`
	RowCount        int      `json:"rows"`
	Sec             int64    `json:"sec"`
	DistM           int      `json:"dist_m"`
	ElevationDeltaM *float64 `json:"elevation_delta_m,omitempty"`
	GradePercent    *float64 `json:"grade,omitempty"`
	Locality        string   `json:"locality,omitempty"`
}

func NewRecord(trackID string, s Segment) Record {
	return Record{
		TrackID:         trackID,
		AnchorIndex:     s.AnchorIndex(),
		Start:           s.Anchor.Time,
		Lat:             s.Anchor.Lat,
		Lon:             s.Anchor.Lon,
		EndLat:          s.EndPoint.Lat(),
		EndLon:          s.EndPoint.Lon(),
		Direction:       s.Direction,
		RowCount:        s.RowCount,
		Sec:             s.Sec,
		DistM:           s.DistM,
		ElevationDeltaM: s.ElevationDeltaM,
		GradePercent:    s.GradePercent,
		Locality:        s.Locality,
	}
}

func (r Record) Point() orb.Point {
	return orb.Point{r.Lon, r.Lat}
}
