package s2

import (
	"github.com/paulmach/orb"
	"testing"
)

func TestCellTokenForPointLevel(t *testing.T) {
	a := orb.Point{14.4000, 50.0800}
	b := orb.Point{14.4001, 50.0801} // ~13m away
	if CellTokenForPointLevel(a, CellLevel13) != CellTokenForPointLevel(b, CellLevel13) {
		t.Errorf("expected nearby points to share a level 13 cell")
	}
	far := orb.Point{-93.26, 44.98}
	if CellTokenForPointLevel(a, CellLevel13) == CellTokenForPointLevel(far, CellLevel13) {
		t.Errorf("expected distant points to differ")
	}
	if lvl := CellIDForPointLevel(a, CellLevel13).Level(); lvl != 13 {
		t.Errorf("expected level 13, got %d", lvl)
	}
}

func TestNeighborTokens(t *testing.T) {
	pt := orb.Point{14.4, 50.08}
	tokens := NeighborTokens(pt, CellLevel13)
	if len(tokens) != 9 {
		t.Fatalf("expected 9 tokens, got %d", len(tokens))
	}
	if tokens[0] != CellTokenForPointLevel(pt, CellLevel13) {
		t.Errorf("expected own cell first")
	}
}

func TestCellGeometryForPointAtLevel(t *testing.T) {
	pt := orb.Point{14.4, 50.08}
	poly := CellGeometryForPointAtLevel(pt, CellLevel13)
	if len(poly) != 1 || len(poly[0]) != 5 {
		t.Fatalf("expected one closed ring of 5 points, got %v", poly)
	}
	if !poly.Bound().Contains(pt) {
		t.Errorf("expected cell bound to contain point")
	}
}
