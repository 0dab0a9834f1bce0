package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/rotblauer/cathills/catdb/cache"
	"github.com/rotblauer/cathills/conceptual"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/geo/clean"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/rgeo"
	"github.com/rotblauer/cathills/stream"
	"github.com/rotblauer/cathills/types"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// Track is the API representation of one recorded journey.
// Each Track holds its own elevation service handle, so Tracks
// may be analyzed concurrently.
type Track struct {
	ID        conceptual.TrackID
	Config    *params.AnalyzeConfig
	Elevation elevation.Profiler

	logger  *slog.Logger
	locator rgeo.Locator
}

func NewTrack(id conceptual.TrackID, config *params.AnalyzeConfig, svc elevation.Profiler) *Track {
	if config == nil {
		config = params.DefaultAnalyzeConfig()
	}
	if config.Clean == nil {
		config.Clean = params.DefaultCleanConfig()
	}
	if config.Kinematics == nil {
		config.Kinematics = params.DefaultKinematicsConfig()
	}
	if config.Sections == nil {
		config.Sections = params.DefaultSectionConfig()
	}
	if config.Hills == nil {
		config.Hills = params.DefaultHillConfig()
	}
	if config.Profile == nil {
		config.Profile = params.DefaultProfileConfig()
	}
	return &Track{
		ID:        id,
		Config:    config,
		Elevation: svc,
		logger:    slog.With("track", id),
	}
}

// WithLocator sets the reverse geocoder used when Config.Locate is set.
func (t *Track) WithLocator(l rgeo.Locator) *Track {
	t.locator = l
	return t
}

// Decode reads raw points from r. With dedupeSize > 0, points equal to
// one of the last dedupeSize points are dropped. With cleaning enabled,
// points off the globe and teleportations are dropped too.
func (t *Track) Decode(ctx context.Context, r io.Reader, format types.Format, dedupeSize int) (trackpoint.RawPoints, error) {
	raw, err := types.DecodeRawPoints(r, format)
	if err != nil {
		return nil, err
	}
	if dedupeSize <= 0 && !t.Config.Clean.Enabled {
		return raw, nil
	}

	pipe := stream.Slice(ctx, raw)
	if dedupeSize > 0 {
		pass := cache.NewDedupePassLRUFunc(dedupeSize)
		pipe = stream.Filter(ctx, func(p trackpoint.RawPoint) bool {
			if pass(p) {
				return true
			}
			t.logger.Warn("Deduped point", "lat", p.Lat, "lon", p.Lon, "time", p.Time)
			return false
		}, pipe)
	}
	if t.Config.Clean.Enabled {
		pipe = stream.Filter(ctx, clean.FilterValidCoordinate, pipe)
		pipe = stream.Transform(ctx, clean.ClearWildElevation(t.Config.Clean), pipe)
		pipe = clean.TeleportationFilter(ctx, t.Config.Clean, pipe)
	}
	out := stream.Collect(ctx, pipe)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dropped := len(raw) - len(out); dropped > 0 {
		t.logger.Info("Cleaned points", "decoded", len(raw), "dropped", dropped)
	}
	return out, nil
}
