package trackpoint

import (
	"errors"
	"testing"
	"time"
)

var rawPointJSONValid = `{
  "heading": 310.8944091796875,
  "speed": 1.1056904792785645,
  "uuid": "5D37B5DA-6E0B-41FE-8A72-2BB681D661DA",
  "long": -93.259307861328125,
  "time": "2024-11-15T22:57:43.999Z",
  "elevation": 246.0128173828125,
  "lat": 44.985164642333984,
  "accuracy": 4.2884750366210938,
  "name": "Rye16"
}`

func TestRawPoint_UnmarshalJSON1(t *testing.T) {
	p := &RawPoint{}
	err := p.UnmarshalJSON([]byte(rawPointJSONValid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Time.String() != "2024-11-15 22:57:43.999 +0000 UTC" {
		t.Errorf("expected Time to be '2024-11-15 22:57:43.999 +0000 UTC', got %v", p.Time)
	}
	if p.DeviceElevation == nil || *p.DeviceElevation != 246.0128173828125 {
		t.Errorf("expected Elevation to be 246.0128173828125, got %v", p.DeviceElevation)
	}
	if p.Lon != -93.259307861328125 {
		t.Errorf("expected Long to be -93.259307861328125, got %v", p.Lon)
	}
	if p.Lat != 44.985164642333984 {
		t.Errorf("expected Lat to be 44.985164642333984, got %v", p.Lat)
	}
}

var featureGeoJSON = `{"id":0,"type":"Feature","geometry":{"type":"Point","coordinates":[-111.6902967,45.5710024]},"properties":{"Accuracy":4.9,"Elevation":1463.6,"Name":"ia","Speed":0.45,"Time":"2024-02-04T18:04:31.172Z","UnixTime":1707069871}}`

// TestRawPoint_UnmarshalJSON2 tests the RawPoint.UnmarshalJSON method
// will return an error when attempting to unmarshal a GeoJSON Feature.
func TestRawPoint_UnmarshalJSON2(t *testing.T) {
	p := &RawPoint{}
	err := p.UnmarshalJSON([]byte(featureGeoJSON))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestEnrichedPoint_Feature(t *testing.T) {
	ele := 312.0
	p := EnrichedPoint{
		RawPoint:         RawPoint{Lat: 50.1, Lon: 14.3, Time: time.Unix(1700000000, 0)},
		Index:            3,
		TerrainElevation: &ele,
		DistanceFromPrev: 0.1,
		ElapsedFromPrev:  30,
	}
	f := p.Feature()
	if f.Geometry.GeoJSONType() != "Point" {
		t.Fatalf("expected point geometry, got %s", f.Geometry.GeoJSONType())
	}
	if got := f.Properties.MustFloat64("Elevation_Terrain", 0); got != 312 {
		t.Errorf("expected terrain elevation 312, got %v", got)
	}
	if _, ok := f.Properties["Velocity"]; ok {
		t.Errorf("expected no velocity property for nil velocity")
	}
	if got := f.Properties.MustInt("Index", -1); got != 3 {
		t.Errorf("expected index 3, got %d", got)
	}
}

func TestEnrichedPoints_TotalDistance(t *testing.T) {
	ps := EnrichedPoints{{DistanceFromPrev: 0}, {DistanceFromPrev: 0.25}, {DistanceFromPrev: 0.5}}
	if got := ps.TotalDistance(); got != 0.75 {
		t.Errorf("expected 0.75, got %v", got)
	}
}
