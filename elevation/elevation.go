// Package elevation defines the terrain elevation and distance service
// consumed by the track pipeline, and the helpers its implementations share.
package elevation

import (
	"errors"
	"fmt"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"math"
)

// ErrUnavailable is returned when a coordinate's terrain elevation cannot be resolved,
// eg. a missing tile or a void sample.
var ErrUnavailable = errors.New("elevation unavailable")

// Service looks up terrain elevations and geodesic distances.
// Implementations need not be safe for concurrent use; give each pipeline run its own handle.
type Service interface {
	// Elevation returns meters above sea level at lat,lon.
	Elevation(lat, lon float64, interpolate bool) (float64, error)

	// Distance returns the distance in km between two points.
	// With slopeCorrected the terrain elevation delta is folded in as a 3-D distance.
	Distance(lat1, lon1, lat2, lon2 float64, slopeCorrected bool) float64
}

// Profile is the response to a MultiElevations request.
type Profile struct {
	// Elevations holds one sample per resolvable path vertex (or intermediate point).
	Elevations []float64

	// Ascent and Descent are the summed positive and negative deltas, both >= 0.
	Ascent  float64
	Descent float64

	// DistanceKm is the planar length of the path.
	DistanceKm float64
}

// Profiler extends Service with elevation profiles along a path.
// Ascent and descent are returned together with the samples they were computed from,
// so there is no "last profile" state to read back in a second call.
type Profiler interface {
	Service
	MultiElevations(path orb.LineString, addIntermediate, interpolate bool) (Profile, error)
}

// HaversineKm is the great-circle distance in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2}) / 1000
}

// SlopeCorrectedKm combines a planar distance (km) and an elevation delta (m).
func SlopeCorrectedKm(planarKm, deltaM float64) float64 {
	return math.Sqrt(planarKm*planarKm + math.Pow(deltaM/1000, 2))
}

// Densify returns the path with intermediate points inserted so that no two
// consecutive points are further than spacingM apart.
// Intermediate points are linearly interpolated in lon/lat, which is fine at these spacings.
func Densify(path orb.LineString, spacingM float64) orb.LineString {
	if len(path) < 2 || spacingM <= 0 {
		return path
	}
	out := orb.LineString{path[0]}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		meters := geo.DistanceHaversine(a, b)
		n := int(math.Floor(meters / spacingM))
		if meters > 0 && math.Mod(meters, spacingM) == 0 {
			n--
		}
		for j := 1; j <= n; j++ {
			f := float64(j) * spacingM / meters
			out = append(out, orb.Point{a[0] + (b[0]-a[0])*f, a[1] + (b[1]-a[1])*f})
		}
		out = append(out, b)
	}
	return out
}

// AscentDescent sums the positive and negative deltas between consecutive samples.
func AscentDescent(elevations []float64) (ascent, descent float64) {
	for i := 1; i < len(elevations); i++ {
		d := elevations[i] - elevations[i-1]
		if d > 0 {
			ascent += d
		} else {
			descent -= d
		}
	}
	return ascent, descent
}

// ProfilePath builds a Profile by looking up every vertex of path
// (densified at spacingM when addIntermediate is set) through svc.
// Ascent and descent depend on every sample: if any is unresolvable,
// ErrUnavailable is returned with the resolved samples and no ascent or descent.
func ProfilePath(svc Service, path orb.LineString, addIntermediate, interpolate bool, spacingM float64) (Profile, error) {
	if addIntermediate {
		path = Densify(path, spacingM)
	}
	p := Profile{Elevations: make([]float64, 0, len(path))}
	missing := 0
	for i, pt := range path {
		if i > 0 {
			prev := path[i-1]
			p.DistanceKm += svc.Distance(prev.Lat(), prev.Lon(), pt.Lat(), pt.Lon(), false)
		}
		ele, err := svc.Elevation(pt.Lat(), pt.Lon(), interpolate)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				missing++
				continue
			}
			return Profile{}, err
		}
		p.Elevations = append(p.Elevations, ele)
	}
	if missing > 0 {
		return p, fmt.Errorf("%w: %d of %d samples", ErrUnavailable, missing, len(path))
	}
	p.Ascent, p.Descent = AscentDescent(p.Elevations)
	return p, nil
}
