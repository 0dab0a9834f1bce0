package hills

import (
	"math"
	"testing"
	"time"

	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/elevation/elevationtest"
	"github.com/rotblauer/cathills/geo/aggregate"
	"github.com/rotblauer/cathills/geo/kinematics"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

var t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func points(elevations ...float64) trackpoint.EnrichedPoints {
	out := make(trackpoint.EnrichedPoints, len(elevations))
	for i, e := range elevations {
		out[i] = trackpoint.EnrichedPoint{
			RawPoint: trackpoint.RawPoint{Lat: float64(i), Time: t0.Add(time.Duration(i*30) * time.Second)},
			Index:    i,
		}
		if !math.IsNaN(e) {
			out[i].TerrainElevation = common.Float64(e)
		}
	}
	return out
}

// sec folds points [from, to] into a 60s 0.2km section ending at end.
func sec(ps trackpoint.EnrichedPoints, from, to, end int) section.Section {
	s := section.Section{
		Anchor:     ps[from],
		End:        ps[end],
		PointCount: to - from + 1,
		AggSec:     60,
		AggDistKm:  0.2,
	}
	for k := from; k <= end; k++ {
		s.Path = append(s.Path, ps[k].Point())
	}
	return s
}

func climb(n int) trackpoint.EnrichedPoints {
	raw := make(trackpoint.RawPoints, n)
	for i := range raw {
		raw[i] = trackpoint.RawPoint{Lat: float64(i), Time: t0.Add(time.Duration(i*30) * time.Second)}
	}
	ps, _, err := kinematics.Derive(raw, nil, elevationtest.Grid(100, 10, 100))
	if err != nil {
		panic(err)
	}
	return ps
}

func assertGrade(t *testing.T, seg hill.Segment, delta, grade float64) {
	t.Helper()
	if seg.ElevationDeltaM == nil || *seg.ElevationDeltaM != delta {
		t.Errorf("delta = %v, want %v", seg.ElevationDeltaM, delta)
	}
	if seg.GradePercent == nil || *seg.GradePercent != grade {
		t.Errorf("grade = %v, want %v", seg.GradePercent, grade)
	}
}

// TestSegmentSteadyClimb: a 5 point steady climb from 100m to 140m is a single 10% hill.
func TestSegmentSteadyClimb(t *testing.T) {
	sections, err := aggregate.Sections(climb(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := Segment(sections, nil)
	if len(got) != 1 {
		t.Fatalf("got %d hills, want 1", len(got))
	}
	h := got[0]
	if h.AnchorIndex() != 0 || h.RowCount != 2 || h.Sec != 120 || h.DistM != 400 || h.Direction != 1 || h.EndIndex != 4 {
		t.Errorf("hill = anchor %d rows %d sec %d m %d dir %d end %d",
			h.AnchorIndex(), h.RowCount, h.Sec, h.DistM, h.Direction, h.EndIndex)
	}
	if h.VelocityKmh == nil || math.Abs(*h.VelocityKmh-12) > 1e-9 {
		t.Errorf("velocity = %v", h.VelocityKmh)
	}
	assertGrade(t, h, 40, 10)
	if hill.Arrow(h.ElevationDeltaM) != "↗40" {
		t.Errorf("arrow = %s", hill.Arrow(h.ElevationDeltaM))
	}
}

func TestSegmentTrailing(t *testing.T) {
	// The sixth point continues the track past the last section.
	sections, err := aggregate.Sections(climb(6), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 || !sections[1].Continued() {
		t.Fatalf("unexpected sections: %d", len(sections))
	}
	if got := Segment(sections, nil); len(got) != 0 {
		t.Errorf("got %d hills, want the open run discarded", len(got))
	}

	config := params.DefaultHillConfig()
	config.FlushTrailing = true
	got := Segment(sections, config)
	if len(got) != 1 {
		t.Fatalf("got %d hills, want 1", len(got))
	}
	// 150m - 100m over 400m of sections.
	assertGrade(t, got[0], 50, 13)
	if got[0].EndIndex != 5 {
		t.Errorf("end = %d", got[0].EndIndex)
	}
}

func TestSegmentDirectionChange(t *testing.T) {
	ps := points(100, 110, 120, 130, 125, 120, 110, 100, 95, 90, 85, 80)
	sections := []section.Section{
		sec(ps, 0, 2, 3),
		sec(ps, 3, 5, 6),
		sec(ps, 6, 8, 9),
		sec(ps, 9, 11, 11),
	}
	got := Segment(sections, nil)
	if len(got) != 2 {
		t.Fatalf("got %d hills, want 2", len(got))
	}
	up, down := got[0], got[1]
	if up.Direction != 1 || up.RowCount != 1 || up.EndIndex != 3 {
		t.Errorf("up: dir %d rows %d end %d", up.Direction, up.RowCount, up.EndIndex)
	}
	assertGrade(t, up, 30, 15)
	if down.Direction != -1 || down.RowCount != 3 || down.DistM != 600 || down.EndIndex != 11 {
		t.Errorf("down: dir %d rows %d m %d end %d", down.Direction, down.RowCount, down.DistM, down.EndIndex)
	}
	assertGrade(t, down, -50, -8)
	if hill.Arrow(down.ElevationDeltaM) != "↘50" {
		t.Errorf("arrow = %s", hill.Arrow(down.ElevationDeltaM))
	}
}

// TestSegmentSignInvariant checks every hill's anchor pairs share one non-zero sign.
func TestSegmentSignInvariant(t *testing.T) {
	ps := points(100, 105, 110, 120, 118, 125, 130, 140, 150, 125, 145, 140, 120, 115, 110)
	var sections []section.Section
	for a := 0; a+2 < len(ps); a += 3 {
		end := a + 3
		if end >= len(ps) {
			end = a + 2
		}
		sections = append(sections, sec(ps, a, a+2, end))
	}
	got := Segment(sections, nil)
	i := 0
	for _, h := range got {
		run := sections[i : i+h.RowCount]
		if h.AnchorIndex() != run[0].AnchorIndex() {
			t.Fatalf("hill anchor %d, run starts %d", h.AnchorIndex(), run[0].AnchorIndex())
		}
		if h.RowCount > 1 {
			for j := range run {
				if d := Direction(sections, i+j); d != h.Direction || d == 0 {
					t.Errorf("hill at %d: section %d direction %d, hill %d", h.AnchorIndex(), i+j, d, h.Direction)
				}
			}
		}
		i += h.RowCount
	}
	if i != len(sections) {
		t.Errorf("hills cover %d sections, want %d", i, len(sections))
	}
	if len(got) != 2 || got[0].RowCount != 2 || got[1].RowCount != 3 {
		t.Errorf("got %d hills", len(got))
	}
}

func TestSegmentSkipSingleton(t *testing.T) {
	ps := points(100, 103, 105, 110, 120)
	ps[2].Skip = true
	sections := []section.Section{
		{Anchor: ps[0], End: ps[3], PointCount: 2, AggSec: 30, AggDistKm: 0.1},
		section.NewSkipSingleton(ps[2]),
		{Anchor: ps[3], End: ps[4], PointCount: 2, AggSec: 60, AggDistKm: 0.2},
	}
	got := Segment(sections, nil)
	if len(got) != 3 {
		t.Fatalf("got %d hills, want 3", len(got))
	}
	if got[0].EndIndex != 2 || got[0].RowCount != 1 {
		t.Errorf("first hill should end at the singleton: end %d rows %d", got[0].EndIndex, got[0].RowCount)
	}
	assertGrade(t, got[0], 5, 5)

	stop := got[1]
	if !stop.IsSkipSingleton || stop.Direction != 0 || stop.DistM != 0 || stop.GradePercent != nil || stop.VelocityKmh != nil {
		t.Errorf("singleton hill = %+v", stop)
	}
	assertGrade(t, got[2], 10, 5)
}

func TestSegmentUnavailableElevation(t *testing.T) {
	ps := points(100, 110, 120, math.NaN(), 140, 150, 160, 170, 180, 190)
	sections := []section.Section{
		sec(ps, 0, 2, 3),
		sec(ps, 3, 5, 6),
		sec(ps, 6, 8, 8),
	}
	got := Segment(sections, nil)
	// Unknown elevation at the second anchor splits the climb.
	if len(got) != 3 {
		t.Fatalf("got %d hills, want 3", len(got))
	}
	for i, h := range got[:2] {
		if h.ElevationDeltaM != nil || h.GradePercent != nil {
			t.Errorf("hill %d should be unavailable: %v %v", i, h.ElevationDeltaM, h.GradePercent)
		}
		if h.Direction != 0 {
			t.Errorf("hill %d direction = %d", i, h.Direction)
		}
	}
	assertGrade(t, got[2], 20, 10)
}

func TestSegmentEmpty(t *testing.T) {
	if got := Segment(nil, nil); len(got) != 0 {
		t.Errorf("got %d", len(got))
	}
}

func TestSteepest(t *testing.T) {
	mk := func(km float64, grade *float64) hill.Segment {
		return hill.Segment{DistKm: km, GradePercent: grade}
	}
	segs := []hill.Segment{
		mk(1.5, common.Float64(4)),
		mk(0.5, common.Float64(20)),
		mk(2.0, common.Float64(-9)),
		mk(3.0, nil),
		mk(1.2, common.Float64(11)),
		mk(1.0, common.Float64(30)),
	}
	got := Steepest(segs, 1.0)
	want := []float64{11, 4, -9}
	if len(got) != len(want) {
		t.Fatalf("got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if *got[i].GradePercent != w {
			t.Errorf("rank %d = %v, want %v", i, *got[i].GradePercent, w)
		}
	}
}
