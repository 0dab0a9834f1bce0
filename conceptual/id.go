package conceptual

import (
	"path/filepath"
	"strings"
)

// TrackID names one recorded journey, e.g. the base name of the GPX file it came from.
type TrackID string

func (t TrackID) String() string {
	return string(t)
}

func (t TrackID) Empty() bool {
	return t == ""
}

// TrackIDFromPath derives a TrackID from a file path,
// stripping directories and (possibly stacked) extensions.
func TrackIDFromPath(p string) TrackID {
	base := filepath.Base(p)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return TrackID(base)
}
