package params

import (
	"time"

	"github.com/rotblauer/cathills/common"
)

// CleanConfig controls the raw point cleaning done while decoding.
type CleanConfig struct {
	Enabled bool

	// TeleportWindow is the longest gap between fixes that is checked for teleportation.
	// Longer gaps are signal loss and always pass.
	TeleportWindow time.Duration

	// TeleportSpeedKmh is the implied speed above which a fix is a teleportation.
	TeleportSpeedKmh float64

	// DeviceElevationMin and DeviceElevationMax bound plausible device elevations.
	// Elevations outside are dropped from the point, the point is kept.
	DeviceElevationMin float64
	DeviceElevationMax float64
}

func DefaultCleanConfig() *CleanConfig {
	return &CleanConfig{
		Enabled:            true,
		TeleportWindow:     5 * time.Minute,
		TeleportSpeedKmh:   common.SpeedOfTrainMaxKmh,
		DeviceElevationMin: common.ElevationOfDeadSea - 100,
		DeviceElevationMax: common.ElevationOfEverest + 100,
	}
}
