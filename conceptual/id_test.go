package conceptual

import "testing"

func TestTrackIDFromPath(t *testing.T) {
	cases := map[string]TrackID{
		"/tmp/gpx/ride-2013.gpx":       "ride-2013",
		"morning.geojson.gz":           "morning",
		"nodots":                       "nodots",
		"./relative/dir/x.y.z.geojson": "x",
	}
	for in, want := range cases {
		if got := TrackIDFromPath(in); got != want {
			t.Errorf("TrackIDFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
