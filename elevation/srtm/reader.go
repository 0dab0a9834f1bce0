// Package srtm implements elevation.Profiler over a directory of SRTM .hgt tiles.
package srtm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/catz"
	"github.com/rotblauer/cathills/elevation"
	"github.com/rotblauer/cathills/params"
)

// Reader resolves elevations from tiles found in a data directory,
// named like N50E014.hgt or N50E014.hgt.gz.
// Decoded tiles are kept in an LRU cache; missing tiles are remembered as nil.
type Reader struct {
	config *params.SRTMConfig
	logger *slog.Logger
	tiles  *lru.Cache[string, *Tile]

	mu      sync.Mutex
	totalKm float64
}

var _ elevation.Profiler = (*Reader)(nil)

func NewReader(config *params.SRTMConfig, logger *slog.Logger) (*Reader, error) {
	if config == nil {
		config = params.DefaultSRTMConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := config.TileCacheSize
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[string, *Tile](size)
	if err != nil {
		return nil, err
	}
	return &Reader{
		config: config,
		logger: logger.With("srtm", config.DataDir),
		tiles:  cache,
	}, nil
}

func (r *Reader) tile(lat, lon float64) (*Tile, error) {
	tlat, tlon := int(math.Floor(lat)), int(math.Floor(lon))
	name := tileName(tlat, tlon)
	if t, ok := r.tiles.Get(name); ok {
		return t, nil
	}
	t, err := r.load(name, tlat, tlon)
	if err != nil {
		return nil, err
	}
	r.tiles.Add(name, t)
	return t, nil
}

func (r *Reader) load(name string, lat, lon int) (*Tile, error) {
	base := filepath.Join(r.config.DataDir, name+".hgt")

	var data []byte
	if f, err := os.Open(base); err == nil {
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			return nil, err
		}
	} else if gzr, err := catz.NewGZFileReader(base + ".gz"); err == nil {
		defer gzr.MaybeClose()
		if data, err = io.ReadAll(gzr); err != nil {
			return nil, err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		r.logger.Debug("SRTM tile missing", "tile", name)
		return nil, nil
	} else {
		return nil, err
	}

	t, err := ParseTile(lat, lon, data)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", name, err)
	}
	r.logger.Debug("SRTM tile loaded", "tile", name, "size", t.Size)
	return t, nil
}

// Elevation implements elevation.Service.
// A missing tile or void sample yields elevation.ErrUnavailable.
func (r *Reader) Elevation(lat, lon float64, interpolate bool) (float64, error) {
	t, err := r.tile(lat, lon)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, elevation.ErrUnavailable
	}
	ele, ok := t.Elevation(lat, lon, interpolate)
	if !ok {
		return 0, elevation.ErrUnavailable
	}
	return ele, nil
}

// Distance implements elevation.Service.
// If either terrain elevation is unavailable, slope correction is skipped.
func (r *Reader) Distance(lat1, lon1, lat2, lon2 float64, slopeCorrected bool) float64 {
	planar := elevation.HaversineKm(lat1, lon1, lat2, lon2)
	if !slopeCorrected {
		return planar
	}
	e1, err := r.Elevation(lat1, lon1, false)
	if err != nil {
		return planar
	}
	e2, err := r.Elevation(lat2, lon2, false)
	if err != nil {
		return planar
	}
	return elevation.SlopeCorrectedKm(planar, e2-e1)
}

// MultiElevations implements elevation.Profiler.
// The profiled distance is added to TotalDistance.
func (r *Reader) MultiElevations(path orb.LineString, addIntermediate, interpolate bool) (elevation.Profile, error) {
	p, err := elevation.ProfilePath(r, path, addIntermediate, interpolate, r.config.IntermediateSpacingM)
	r.mu.Lock()
	r.totalKm += p.DistanceKm
	r.mu.Unlock()
	return p, err
}

// TotalDistance is the running total (km) of distances profiled by this Reader.
func (r *Reader) TotalDistance() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalKm
}
