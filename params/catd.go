package params

import (
	"compress/gzip"
	"github.com/ethereum/go-ethereum/metrics"
	"os"
	"path/filepath"
	"time"
)

func init() {
	metrics.Enabled = true
}

const (
	TracksDir = "tracks"

	PointsGZFileName   = "points.geojson.gz"
	SectionsGZFileName = "sections.geojson.gz"
	HillsGZFileName    = "hills.geojson.gz"
)

var DefaultDatadirRoot = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(home, ".cathills")
}()

var StateDBName = "state.db"

// StateBucket* are the names of the buckets in the state KV DB.
var StateBucketSummaries = []byte("summaries")
var StateBucketHills = []byte("hills")
var StateBucketHillsS2 = []byte("hills_s2")

var DefaultGZipCompressionLevel = gzip.BestCompression

// DefaultElevationCacheTTL bounds how long a single coordinate's elevation is memoized.
var DefaultElevationCacheTTL = 10 * time.Minute

// DefaultDedupeCacheSize is the number of recent raw points remembered
// by the duplicate filter.
var DefaultDedupeCacheSize = 10_000
