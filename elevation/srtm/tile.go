package srtm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Void is the SRTM no-data sample value.
const Void = math.MinInt16

var ErrTileSize = errors.New("invalid tile size")

// Tile is one 1x1 degree SRTM height grid.
// Samples are stored row-major with row 0 on the tile's north edge.
type Tile struct {
	// Lat and Lon are the integer south-west corner of the tile.
	Lat, Lon int
	Size     int
	Samples  []int16
}

// TileName returns the conventional tile name covering lat,lon, eg. N50E014.
func TileName(lat, lon float64) string {
	return tileName(int(math.Floor(lat)), int(math.Floor(lon)))
}

func tileName(lat, lon int) string {
	ns, ew := 'N', 'E'
	if lat < 0 {
		ns = 'S'
		lat = -lat
	}
	if lon < 0 {
		ew = 'W'
		lon = -lon
	}
	return fmt.Sprintf("%c%02d%c%03d", ns, lat, ew, lon)
}

// ParseTile decodes a raw .hgt grid of big-endian int16 samples.
// The grid must be square; the standard sizes are 1201 (3") and 3601 (1").
func ParseTile(lat, lon int, data []byte) (*Tile, error) {
	n := len(data) / 2
	size := int(math.Sqrt(float64(n)))
	if len(data)%2 != 0 || size < 2 || size*size != n {
		return nil, fmt.Errorf("%w: %d bytes", ErrTileSize, len(data))
	}
	t := &Tile{Lat: lat, Lon: lon, Size: size, Samples: make([]int16, n)}
	for i := range t.Samples {
		t.Samples[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
	}
	return t, nil
}

func (t *Tile) sample(row, col int) (float64, bool) {
	v := t.Samples[row*t.Size+col]
	if v == Void {
		return 0, false
	}
	return float64(v), true
}

// Elevation returns the tile's elevation at lat,lon, which must fall within the tile.
// Without interpolate the nearest sample is used; with it, the four surrounding
// samples are bilinearly weighted. If any of them is void the nearest sample is used.
func (t *Tile) Elevation(lat, lon float64, interpolate bool) (float64, bool) {
	last := float64(t.Size - 1)
	row := clamp((1-(lat-float64(t.Lat)))*last, 0, last)
	col := clamp((lon-float64(t.Lon))*last, 0, last)

	nearest := func() (float64, bool) {
		return t.sample(int(math.Round(row)), int(math.Round(col)))
	}
	if !interpolate {
		return nearest()
	}

	r0, c0 := int(math.Floor(row)), int(math.Floor(col))
	r1, c1 := min(r0+1, t.Size-1), min(c0+1, t.Size-1)
	dr, dc := row-float64(r0), col-float64(c0)

	v00, ok00 := t.sample(r0, c0)
	v01, ok01 := t.sample(r0, c1)
	v10, ok10 := t.sample(r1, c0)
	v11, ok11 := t.sample(r1, c1)
	if !(ok00 && ok01 && ok10 && ok11) {
		return nearest()
	}
	return v00*(1-dr)*(1-dc) + v01*(1-dr)*dc + v10*dr*(1-dc) + v11*dr*dc, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
