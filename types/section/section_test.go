package section

import (
	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/types/trackpoint"
	"testing"
)

func TestNewSkipSingleton(t *testing.T) {
	p := trackpoint.EnrichedPoint{RawPoint: trackpoint.RawPoint{Lat: 1, Lon: 2}, Index: 7, Skip: true}
	s := NewSkipSingleton(p)
	if !s.IsSkipSingleton || s.PointCount != 1 || s.AggSec != 0 || s.AggDistKm != 0 {
		t.Fatalf("unexpected singleton: %+v", s)
	}
	if s.AnchorIndex() != 7 {
		t.Errorf("expected anchor 7, got %d", s.AnchorIndex())
	}
	if len(s.Path) != 1 || !s.Path[0].Equal(orb.Point{2, 1}) {
		t.Errorf("expected path of the point itself, got %v", s.Path)
	}
	if s.Continued() {
		t.Errorf("singleton should not be continued")
	}
	if got := s.Feature().Geometry.GeoJSONType(); got != "Point" {
		t.Errorf("expected Point geometry for singleton, got %s", got)
	}
}

func TestSection_Continued(t *testing.T) {
	s := Section{
		Anchor:     trackpoint.EnrichedPoint{Index: 3},
		End:        trackpoint.EnrichedPoint{Index: 4},
		PointCount: 2,
	}
	if s.LastFoldedIndex() != 4 {
		t.Fatalf("expected last folded 4, got %d", s.LastFoldedIndex())
	}
	if s.Continued() {
		t.Errorf("expected section ending at its last folded point to not be continued")
	}
	s.End = trackpoint.EnrichedPoint{Index: 5}
	if !s.Continued() {
		t.Errorf("expected section with continuity point to be continued")
	}
}
