// Package kinematics derives per-point distance, elapsed time, velocity,
// terrain elevation and the stationary skip flag from raw track points.
package kinematics

import (
	"errors"
	"fmt"

	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/trackpoint"
)

var ErrInvalidTimestamp = trackpoint.ErrInvalidTimestamp

// Deriver enriches points one at a time, carrying the previous point
// and the running total distance between calls.
type Deriver struct {
	config *params.KinematicsConfig
	svc    elevation.Service

	prev    *trackpoint.EnrichedPoint
	next    int
	totalKm float64
}

func NewDeriver(config *params.KinematicsConfig, svc elevation.Service) *Deriver {
	if config == nil {
		config = params.DefaultKinematicsConfig()
	}
	return &Deriver{config: config, svc: svc}
}

// TotalDistance is the sum of DistanceFromPrev over every point added so far, in km.
func (d *Deriver) TotalDistance() float64 {
	return d.totalKm
}

// Add enriches the next point of the track.
// The first point is its own predecessor, so it has zero distance and elapsed time.
func (d *Deriver) Add(raw trackpoint.RawPoint) (trackpoint.EnrichedPoint, error) {
	ep := trackpoint.EnrichedPoint{RawPoint: raw, Index: d.next}
	if raw.Time.IsZero() {
		return ep, fmt.Errorf("%w: point %d has no time", ErrInvalidTimestamp, d.next)
	}

	ele, err := d.svc.Elevation(raw.Lat, raw.Lon, d.config.Interpolate)
	if err == nil {
		ep.TerrainElevation = common.Float64(ele)
	} else if !errors.Is(err, elevation.ErrUnavailable) {
		return ep, fmt.Errorf("elevation at point %d: %w", d.next, err)
	}

	prev := d.prev
	if prev == nil {
		prev = &ep
	}
	if raw.Time.Before(prev.Time) {
		return ep, fmt.Errorf("%w: point %d at %s is earlier than point %d at %s",
			ErrInvalidTimestamp, ep.Index, raw.Time, prev.Index, prev.Time)
	}

	ep.ElapsedFromPrev = raw.Time.Unix() - prev.Time.Unix()
	ep.DistanceFromPrev = d.svc.Distance(prev.Lat, prev.Lon, raw.Lat, raw.Lon, false)
	if d.config.PythagoreanDistance && ep.DistanceFromPrev > 0 {
		var deltaM float64
		if ep.TerrainElevation != nil && prev.TerrainElevation != nil {
			deltaM = *prev.TerrainElevation - *ep.TerrainElevation
		}
		ep.DistanceFromPrev = elevation.SlopeCorrectedKm(ep.DistanceFromPrev, deltaM)
	}
	ep.VelocityKmh = common.KmhOf(ep.DistanceFromPrev, ep.ElapsedFromPrev)
	ep.Skip = d.config.SkipStationary &&
		ep.VelocityKmh != nil &&
		*ep.VelocityKmh < d.config.StationarySpeedKmh

	d.totalKm += ep.DistanceFromPrev
	d.prev = &ep
	d.next++
	return ep, nil
}

// Derive enriches a whole track. It returns the enriched points, in input order,
// and the total distance in km.
// An InvalidTimestamp error aborts the run without a partial result.
func Derive(points trackpoint.RawPoints, config *params.KinematicsConfig, svc elevation.Service) (trackpoint.EnrichedPoints, float64, error) {
	d := NewDeriver(config, svc)
	out := make(trackpoint.EnrichedPoints, 0, len(points))
	for _, p := range points {
		ep, err := d.Add(p)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ep)
	}
	return out, d.TotalDistance(), nil
}
