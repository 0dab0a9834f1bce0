// Package clean drops implausible raw points before analysis.
package clean

import (
	"context"

	"github.com/paulmach/orb/geo"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// FilterValidCoordinate filters out points off the globe, and fixes at exactly 0,0
// which devices report before they have a fix.
func FilterValidCoordinate(p trackpoint.RawPoint) bool {
	if p.Lat == 0 && p.Lon == 0 {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ClearWildElevation drops a device elevation outside the configured bounds.
func ClearWildElevation(config *params.CleanConfig) func(trackpoint.RawPoint) trackpoint.RawPoint {
	return func(p trackpoint.RawPoint) trackpoint.RawPoint {
		if p.DeviceElevation == nil {
			return p
		}
		if e := *p.DeviceElevation; e < config.DeviceElevationMin || e > config.DeviceElevationMax {
			p.DeviceElevation = nil
		}
		return p
	}
}

// TeleportationFilter drops points implying a speed above config.TeleportSpeedKmh
// from the last passed point. Points after a gap longer than config.TeleportWindow,
// and points sharing the last point's time, always pass.
func TeleportationFilter(ctx context.Context, config *params.CleanConfig, in <-chan trackpoint.RawPoint) <-chan trackpoint.RawPoint {
	out := make(chan trackpoint.RawPoint)

	go func() {
		defer close(out)

		var last *trackpoint.RawPoint

		for p := range in {
			if last != nil {
				interval := p.Time.Sub(last.Time)
				if interval > 0 && interval <= config.TeleportWindow {
					km := geo.Distance(last.Point(), p.Point()) / 1000
					if speed := common.KmhOf(km, int64(interval.Seconds())); speed != nil && *speed > config.TeleportSpeedKmh {
						continue
					}
				}
			}

			select {
			case <-ctx.Done():
				return
			case out <- p:
				last = &p
			}
		}
	}()
	return out
}
