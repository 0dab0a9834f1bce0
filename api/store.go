package api

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/cathills/catz"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/state"
	"github.com/rotblauer/cathills/stream"
	"github.com/rotblauer/cathills/types/hill"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

var errEmptyAnalysis = errors.New("empty analysis")

// Summary returns the storable summary of the analysis.
func (t *Track) Summary(a *Analysis) state.Summary {
	sum := state.Summary{
		TrackID:     t.ID,
		Fingerprint: a.Fingerprint,
		Points:      len(a.Points),
		Sections:    len(a.Sections),
		Hills:       len(a.Hills),
		DistanceKm:  a.DistanceKm,
		StoredAt:    time.Now().UTC(),
	}
	if len(a.Points) > 0 {
		sum.Start = a.Points[0].Time
		sum.End = a.Points[len(a.Points)-1].Time
	}
	if a.Profile != nil {
		sum.AscentM = a.Profile.TotalAscentM
		sum.DescentM = a.Profile.TotalDescentM
	}
	return sum
}

// Current reports whether the stored analysis of the track has the given fingerprint.
func (t *Track) Current(st *state.State, fingerprint uint64) (bool, error) {
	sum, err := st.GetSummary(t.ID)
	if errors.Is(err, state.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sum.Fingerprint == fingerprint, nil
}

func writeFeatures[T any](ctx context.Context, flat *catz.Flat, name string, items []T, feature func(T) *geojson.Feature) (int, error) {
	w, err := flat.NewGZFileWriter(name, nil)
	if err != nil {
		return 0, err
	}
	n, err := stream.WriteNDJSON(w, stream.Transform(ctx, feature, stream.Slice(ctx, items)))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Store writes the points, sections and hills of the analysis as gzipped
// newline-delimited GeoJSON features under the track's directory,
// then the summary and hill records to the state DB.
func (t *Track) Store(ctx context.Context, st *state.State, a *Analysis) error {
	if a == nil || len(a.Points) == 0 {
		return errEmptyAnalysis
	}
	flat := st.TrackFlat(t.ID)
	started := time.Now()

	n, err := writeFeatures(ctx, flat, params.PointsGZFileName, a.Points, trackpoint.EnrichedPoint.Feature)
	if err != nil {
		return err
	}
	t.logger.Debug("Stored points", "n", humanize.Comma(int64(n)), "path", flat.Path())

	if _, err := writeFeatures(ctx, flat, params.SectionsGZFileName, a.Sections, section.Section.Feature); err != nil {
		return err
	}
	if _, err := writeFeatures(ctx, flat, params.HillsGZFileName, a.Hills, hill.Segment.Feature); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := st.PutHills(t.ID, a.Records(t.ID.String())); err != nil {
		return err
	}
	if err := st.PutSummary(t.Summary(a)); err != nil {
		return err
	}
	t.logger.Info("Stored analysis",
		"dir", flat.Path(),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return nil
}
