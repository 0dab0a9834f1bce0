// Package hills groups consecutive sections sharing an elevation trend into hill segments.
package hills

import (
	"sort"

	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// Direction is the elevation-trend sign of section i: positive when the terrain rises
// from its anchor to the next section's anchor, negative when it falls.
// The last section looks at its own end point instead.
// Skip singletons and unavailable elevations are 0.
func Direction(sections []section.Section, i int) int {
	s := sections[i]
	if s.IsSkipSingleton {
		return 0
	}
	to := s.End
	if i+1 < len(sections) {
		to = sections[i+1].Anchor
	}
	d := delta(s.Anchor, to)
	if d == nil {
		return 0
	}
	return common.Sign(*d)
}

func delta(from, to trackpoint.EnrichedPoint) *float64 {
	if from.TerrainElevation == nil || to.TerrainElevation == nil {
		return nil
	}
	return common.Float64(*to.TerrainElevation - *from.TerrainElevation)
}

type run struct {
	sections  []section.Section
	direction int
}

func (r *run) empty() bool {
	return len(r.sections) == 0
}

// accepts reports whether a section with direction d continues the run.
// Flat (or unknown) runs and skip singletons never extend.
func (r *run) accepts(s section.Section, d int) bool {
	if r.empty() {
		return false
	}
	return d != 0 && d == r.direction && !s.IsSkipSingleton && !r.sections[0].IsSkipSingleton
}

// segment closes the run at the given boundary point.
func (r *run) segment(end trackpoint.EnrichedPoint) hill.Segment {
	seg := hill.Segment{
		Section:   r.sections[0],
		Direction: r.direction,
		RowCount:  len(r.sections),
		EndIndex:  end.Index,
		EndPoint:  end.Point(),
	}
	for _, s := range r.sections {
		seg.Sec += s.AggSec
		seg.DistKm += s.AggDistKm
	}
	seg.DistM = common.Round(1000 * seg.DistKm)
	seg.VelocityKmh = common.KmhOf(seg.DistKm, seg.Sec)
	seg.ElevationDeltaM = delta(seg.Anchor, end)
	if seg.DistM > 0 && seg.ElevationDeltaM != nil {
		seg.GradePercent = common.Float64(float64(common.Round(*seg.ElevationDeltaM / float64(seg.DistM) * 100)))
	}
	return seg
}

// Segment returns one hill segment per maximal run of sections sharing a non-zero direction.
// A run ends at the anchor of the section that breaks it. Skip singletons break runs
// and form their own one-row segments.
//
// The last run is only emitted if the last section did not continue into points
// that were never folded into a section, or with FlushTrailing.
func Segment(sections []section.Section, config *params.HillConfig) []hill.Segment {
	if config == nil {
		config = params.DefaultHillConfig()
	}
	var out []hill.Segment
	var r run
	for i, s := range sections {
		d := Direction(sections, i)
		if r.accepts(s, d) {
			r.sections = append(r.sections, s)
			continue
		}
		if !r.empty() {
			out = append(out, r.segment(s.Anchor))
		}
		r = run{sections: []section.Section{s}, direction: d}
	}
	if r.empty() {
		return out
	}
	last := r.sections[len(r.sections)-1]
	if !last.Continued() || config.FlushTrailing {
		out = append(out, r.segment(last.End))
	}
	return out
}

// Steepest returns the segments longer than minDistKm with a defined grade,
// ordered by grade, steepest climb first.
func Steepest(segments []hill.Segment, minDistKm float64) []hill.Segment {
	var out []hill.Segment
	for _, s := range segments {
		if s.DistKm > minDistKm && s.GradePercent != nil && !s.IsSkipSingleton {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].GradePercent > *out[j].GradePercent
	})
	return out
}
