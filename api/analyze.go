package api

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/rotblauer/cathills/catdb/cache"
	"github.com/rotblauer/cathills/geo/aggregate"
	"github.com/rotblauer/cathills/geo/hills"
	"github.com/rotblauer/cathills/geo/kinematics"
	"github.com/rotblauer/cathills/geo/profile"
	"github.com/rotblauer/cathills/rgeo"
	"github.com/rotblauer/cathills/types"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

var (
	kinematicsTimer = metrics.NewRegisteredTimer("analyze/kinematics", nil)
	sectionsTimer   = metrics.NewRegisteredTimer("analyze/sections", nil)
	hillsTimer      = metrics.NewRegisteredTimer("analyze/hills", nil)
	profileTimer    = metrics.NewRegisteredTimer("analyze/profile", nil)
	pointsMeter     = metrics.NewRegisteredMeter("analyze/points", nil)
)

// Analysis is the outcome of one pipeline run over a track.
// All of it is derived from the raw points and the elevation service.
type Analysis struct {
	Points     trackpoint.EnrichedPoints
	DistanceKm float64
	Sections   []section.Section
	Hills      []hill.Segment

	// Steepest are the longer hills by grade, steepest first.
	Steepest []hill.Segment

	// Profile is nil when profiling is disabled.
	Profile    *profile.Profile
	Elevations profile.ElevationStats

	// Fingerprint identifies the raw input together with the config.
	Fingerprint uint64
}

// Analyze runs the pipeline: kinematics, sections, hills, then the optional
// profile and locality stages. Each stage completes before the next starts.
func (t *Track) Analyze(ctx context.Context, raw trackpoint.RawPoints) (*Analysis, error) {
	if len(raw) == 0 {
		return nil, types.ErrNoPoints
	}
	fingerprint, err := cache.Fingerprint(raw, t.Config)
	if err != nil {
		return nil, err
	}
	a := &Analysis{Fingerprint: fingerprint}

	started := time.Now()
	a.Points, a.DistanceKm, err = kinematics.Derive(raw, t.Config.Kinematics, t.Elevation)
	if err != nil {
		return nil, err
	}
	kinematicsTimer.UpdateSince(started)
	pointsMeter.Mark(int64(len(a.Points)))
	a.Elevations = profile.Elevations(a.Points)
	t.logger.Info("Derived kinematics",
		"points", humanize.Comma(int64(len(a.Points))),
		"distance.km", humanize.FtoaWithDigits(a.DistanceKm, 3),
		"elevations", a.Elevations.Samples,
		"elapsed", time.Since(started).Round(time.Millisecond))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	a.Sections, err = aggregate.Sections(a.Points, t.Config.Sections)
	if err != nil {
		return nil, err
	}
	sectionsTimer.UpdateSince(started)
	t.logger.Info("Aggregated sections",
		"sections", len(a.Sections),
		"target", t.Config.Sections.TargetDuration,
		"elapsed", time.Since(started).Round(time.Millisecond))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started = time.Now()
	a.Hills = hills.Segment(a.Sections, t.Config.Hills)
	hillsTimer.UpdateSince(started)
	t.logger.Info("Segmented hills",
		"hills", len(a.Hills),
		"elapsed", time.Since(started).Round(time.Millisecond))

	if t.Config.Profile.Enabled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		started = time.Now()
		p, err := profile.Sections(t.Elevation, a.Sections, t.Config.Kinematics.Interpolate)
		if err != nil {
			return nil, err
		}
		a.Profile = &p
		profileTimer.UpdateSince(started)
		t.logger.Info("Profiled sections",
			"ascent.m", humanize.FtoaWithDigits(p.TotalAscentM, 1),
			"descent.m", humanize.FtoaWithDigits(p.TotalDescentM, 1),
			"unavailable", p.Unavailable,
			"elapsed", time.Since(started).Round(time.Millisecond))
	}

	if t.Config.Locate {
		if err := t.locate(a.Hills); err != nil {
			return nil, err
		}
	}
	a.Steepest = hills.Steepest(a.Hills, t.Config.Profile.SteepestMinDistKm)
	return a, nil
}

func (t *Track) locate(segments []hill.Segment) error {
	if t.locator == nil {
		if err := rgeo.Init(); err != nil {
			return err
		}
		l, err := rgeo.R()
		if err != nil {
			return err
		}
		t.locator = l
	}
	for i := range segments {
		loc, err := t.locator.Locality(segments[i].Anchor.Point())
		if err != nil {
			t.logger.Warn("Failed to locate hill", "anchor", segments[i].AnchorIndex(), "error", err)
			continue
		}
		segments[i].Locality = loc
	}
	return nil
}

// Records returns the storable form of the analysis' hills, without skip singletons.
func (a *Analysis) Records(id string) []hill.Record {
	out := make([]hill.Record, 0, len(a.Hills))
	for _, h := range a.Hills {
		if h.IsSkipSingleton {
			continue
		}
		out = append(out, hill.NewRecord(id, h))
	}
	return out
}
