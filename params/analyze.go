package params

import (
	"errors"
	"fmt"
	"github.com/rotblauer/cathills/common"
	"time"
)

var ErrSectionDuration = errors.New("section duration must be at least 1s")

// KinematicsConfig controls how raw points become enriched points.
type KinematicsConfig struct {
	// Interpolate asks the elevation service for bilinear interpolation
	// instead of the nearest sample.
	Interpolate bool

	// PythagoreanDistance combines the planar distance and the terrain elevation delta
	// into a slope-corrected (3-D) distance.
	PythagoreanDistance bool

	// SkipStationary flags points slower than StationarySpeedKmh as skip points.
	SkipStationary bool

	// StationarySpeedKmh is the speed threshold (exclusive) for skip points.
	StationarySpeedKmh float64
}

func DefaultKinematicsConfig() *KinematicsConfig {
	return &KinematicsConfig{
		Interpolate:         false,
		PythagoreanDistance: false,
		SkipStationary:      false,
		StationarySpeedKmh:  common.SpeedOfStationaryKmh,
	}
}

// SectionConfig controls the duration-based section aggregation.
type SectionConfig struct {
	// TargetDuration is the duration a section must reach before it is closed.
	TargetDuration time.Duration

	// FlushTrailing closes the last, partial buffer at the end of input.
	// By default it is discarded since it never reached TargetDuration.
	FlushTrailing bool
}

func DefaultSectionConfig() *SectionConfig {
	return &SectionConfig{
		TargetDuration: 60 * time.Second,
		FlushTrailing:  false,
	}
}

// Validate rejects durations that truncate to zero whole seconds.
func (c *SectionConfig) Validate() error {
	if c.TargetDuration < time.Second {
		return fmt.Errorf("%w: got %s", ErrSectionDuration, c.TargetDuration)
	}
	return nil
}

// HillConfig controls elevation-trend hill segmentation.
type HillConfig struct {
	// FlushTrailing emits the last run of sections even when the track
	// continued past the last section (into points never folded into a section).
	FlushTrailing bool
}

func DefaultHillConfig() *HillConfig {
	return &HillConfig{
		FlushTrailing: false,
	}
}

// ProfileConfig controls the per-section elevation profiles.
type ProfileConfig struct {
	Enabled bool

	// SteepestMinDistKm is the minimum hill length (exclusive) to rank as a steep hill.
	SteepestMinDistKm float64
}

func DefaultProfileConfig() *ProfileConfig {
	return &ProfileConfig{
		Enabled:           true,
		SteepestMinDistKm: 1.0,
	}
}

// AnalyzeConfig bundles the stage configs for a whole pipeline run.
type AnalyzeConfig struct {
	Clean      *CleanConfig
	Kinematics *KinematicsConfig
	Sections   *SectionConfig
	Hills      *HillConfig
	Profile    *ProfileConfig

	// Locate reverse geocodes hill starts.
	Locate bool
}

func DefaultAnalyzeConfig() *AnalyzeConfig {
	return &AnalyzeConfig{
		Clean:      DefaultCleanConfig(),
		Kinematics: DefaultKinematicsConfig(),
		Sections:   DefaultSectionConfig(),
		Hills:      DefaultHillConfig(),
		Profile:    DefaultProfileConfig(),
	}
}
