package elevation

import (
	"errors"
	"fmt"
	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"
	"math"
	"time"
)

// Cached memoizes elevation lookups of a Service by coordinate.
// Unavailable lookups are memoized too, as NaN.
type Cached struct {
	svc      Service
	spacingM float64
	cache    *ttlcache.Cache[string, float64]
}

// NewCached wraps svc. spacingM is used for intermediate points in MultiElevations.
func NewCached(svc Service, ttl time.Duration, spacingM float64) *Cached {
	return &Cached{
		svc:      svc,
		spacingM: spacingM,
		cache: ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](ttl),
			ttlcache.WithDisableTouchOnHit[string, float64]()),
	}
}

func cacheKey(lat, lon float64, interpolate bool) string {
	return fmt.Sprintf("%.7f,%.7f,%t", lat, lon, interpolate)
}

func (c *Cached) Elevation(lat, lon float64, interpolate bool) (float64, error) {
	key := cacheKey(lat, lon, interpolate)
	if item := c.cache.Get(key); item != nil {
		if math.IsNaN(item.Value()) {
			return 0, ErrUnavailable
		}
		return item.Value(), nil
	}
	ele, err := c.svc.Elevation(lat, lon, interpolate)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			c.cache.Set(key, math.NaN(), ttlcache.DefaultTTL)
		}
		return 0, err
	}
	c.cache.Set(key, ele, ttlcache.DefaultTTL)
	return ele, nil
}

func (c *Cached) Distance(lat1, lon1, lat2, lon2 float64, slopeCorrected bool) float64 {
	if !slopeCorrected {
		return c.svc.Distance(lat1, lon1, lat2, lon2, false)
	}
	planar := c.svc.Distance(lat1, lon1, lat2, lon2, false)
	e1, err1 := c.Elevation(lat1, lon1, false)
	e2, err2 := c.Elevation(lat2, lon2, false)
	if err1 != nil || err2 != nil {
		return planar
	}
	return SlopeCorrectedKm(planar, e2-e1)
}

func (c *Cached) MultiElevations(path orb.LineString, addIntermediate, interpolate bool) (Profile, error) {
	return ProfilePath(c, path, addIntermediate, interpolate, c.spacingM)
}

// Len is the number of memoized coordinates.
func (c *Cached) Len() int {
	return c.cache.Len()
}
