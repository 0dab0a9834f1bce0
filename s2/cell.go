package s2

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// CellIDWithLevel returns the cellID truncated to the given level.
// https://docs.s2cell.aliddell.com/en/stable/s2_concepts.html#truncation
func CellIDWithLevel(cellID s2.CellID, level CellLevel) s2.CellID {
	var lsb uint64 = 1 << (2 * (30 - level))
	truncatedCellID := (uint64(cellID) & -lsb) | lsb
	return s2.CellID(truncatedCellID)
}

// CellIDForPointLevel returns the cellID at some level for the given (lon,lat) point.
func CellIDForPointLevel(pt orb.Point, level CellLevel) s2.CellID {
	return CellIDWithLevel(s2.CellIDFromLatLng(s2.LatLngFromDegrees(pt.Lat(), pt.Lon())), level)
}

// CellTokenForPointLevel is the compact string form of CellIDForPointLevel,
// suitable as a KV key.
func CellTokenForPointLevel(pt orb.Point, level CellLevel) string {
	return CellIDForPointLevel(pt, level).ToToken()
}

// NeighborTokens returns the tokens for the cell containing pt
// and its (up to 8) neighbors at the same level.
// Points near a cell edge have their nearby hills in the neighbors.
func NeighborTokens(pt orb.Point, level CellLevel) []string {
	id := CellIDForPointLevel(pt, level)
	out := []string{id.ToToken()}
	for _, n := range id.AllNeighbors(int(level)) {
		out = append(out, n.ToToken())
	}
	return out
}

// CellGeometryForPointAtLevel returns the cell polygon containing pt.
func CellGeometryForPointAtLevel(pt orb.Point, level CellLevel) orb.Polygon {
	cell := s2.CellFromCellID(CellIDForPointLevel(pt, level))
	vertices := orb.Ring{}
	for i := 0; i < 4; i++ {
		ll := s2.LatLngFromPoint(cell.Vertex(i))
		vertices = append(vertices, orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()})
	}
	vertices = append(vertices, vertices[0])
	return orb.Polygon{vertices}
}
