package testdata

import (
	"path/filepath"
	"runtime"
)

// basepath is the root directory of this package.
var basepath string

func init() {
	_, currentFile, _, _ := runtime.Caller(0)
	basepath = filepath.Dir(currentFile)
}

// Path returns the absolute path the given relative file or directory path,
// relative to this testdata/ directory in the user's GOPATH.
// If rel is already absolute, it is returned unmodified.
// Taken from https://github.com/grpc/grpc-go/blob/master/testdata/testdata.go.
func Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(basepath, rel)
}

// GPXClimb is a 9 point ride north along lon 14, 30 seconds and about 111m apart.
// Point 4 is a duplicate fix of point 3; it repeats the coordinate and time.
var GPXClimb = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="cathills" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>climb</name>
    <trkseg>
      <trkpt lat="50.000" lon="14.000"><ele>101.0</ele><time>2024-06-01T08:00:00Z</time></trkpt>
      <trkpt lat="50.001" lon="14.000"><ele>112.0</ele><time>2024-06-01T08:00:30Z</time></trkpt>
      <trkpt lat="50.002" lon="14.000"><ele>119.0</ele><time>2024-06-01T08:01:00Z</time></trkpt>
      <trkpt lat="50.003" lon="14.000"><ele>131.0</ele><time>2024-06-01T08:01:30Z</time></trkpt>
      <trkpt lat="50.003" lon="14.000"><ele>131.0</ele><time>2024-06-01T08:01:30Z</time></trkpt>
      <trkpt lat="50.004" lon="14.000"><ele>140.0</ele><time>2024-06-01T08:02:00Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="50.005" lon="14.000"><ele>149.0</ele><time>2024-06-01T08:02:30Z</time></trkpt>
      <trkpt lat="50.006" lon="14.000"><ele>161.0</ele><time>2024-06-01T08:03:00Z</time></trkpt>
      <trkpt lat="50.007" lon="14.000"><ele>170.0</ele><time>2024-06-01T08:03:30Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>
`

// NDGeoJSONCats is the same ride as cat tracks, one GeoJSON feature per line,
// without the duplicate.
var NDGeoJSONCats = `{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.000]},"properties":{"Name":"Rye16","UnixTime":1717228800,"Elevation":101.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.001]},"properties":{"Name":"Rye16","UnixTime":1717228830,"Elevation":112.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.002]},"properties":{"Name":"Rye16","UnixTime":1717228860,"Elevation":119.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.003]},"properties":{"Name":"Rye16","UnixTime":1717228890,"Elevation":131.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.004]},"properties":{"Name":"Rye16","UnixTime":1717228920,"Elevation":140.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.005]},"properties":{"Name":"Rye16","Time":"2024-06-01T08:02:30Z","Elevation":149.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.006]},"properties":{"Name":"Rye16","UnixTime":1717228980,"Elevation":161.0}}
{"type":"Feature","geometry":{"type":"Point","coordinates":[14.000,50.007]},"properties":{"Name":"Rye16","UnixTime":1717229010,"Elevation":170.0}}
`
