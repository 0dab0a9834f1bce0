package params

import (
	"os"
	"path/filepath"
)

type SRTMConfig struct {
	// DataDir holds the .hgt (or .hgt.gz) tiles, named like N50E014.hgt.
	DataDir string

	// TileCacheSize is the number of decoded tiles kept in memory.
	// A 3-arc-second tile is ~2.9MB, a 1-arc-second tile is ~26MB.
	TileCacheSize int

	// IntermediateSpacingM is the spacing of intermediate samples
	// added between path vertices when profiling.
	IntermediateSpacingM float64
}

func DefaultSRTMConfig() *SRTMConfig {
	dir := os.Getenv("SRTM_DATA_DIR")
	if dir == "" {
		dir = filepath.Join(DefaultDatadirRoot, "srtm")
	}
	return &SRTMConfig{
		DataDir:              dir,
		TileCacheSize:        8,
		IntermediateSpacingM: 50,
	}
}
