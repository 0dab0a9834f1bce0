// Package rgeo reverse geocodes points to human place names
// using the embedded Natural Earth datasets of sams96/rgeo.
package rgeo

import (
	"errors"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	srgeo "github.com/sams96/rgeo"
)

var ErrNotInitialized = errors.New("rgeo not initialized")

type Locator interface {
	Locality(pt orb.Point) (string, error)
}

// rR is our wrapped rgeo.Rgeo instance, which implements Locator.
type rR srgeo.Rgeo

var (
	r    *rR
	once sync.Once
	rErr error
)

// datasets are the datasets that the reverse geocoder will use.
// Counties are left out; the place names they add are rarely useful for hills.
var datasets = []func() []byte{
	srgeo.Cities10,
	srgeo.Countries10,
	srgeo.Provinces10,
}

// Init loads the datasets. It takes a few seconds, and is only done once.
func Init() error {
	once.Do(func() {
		r1, err := srgeo.New(datasets...)
		if err != nil {
			rErr = err
			return
		}
		r = (*rR)(r1)
	})
	return rErr
}

// R returns the in-process Locator, or ErrNotInitialized.
func R() (Locator, error) {
	if r == nil {
		return nil, ErrNotInitialized
	}
	return r, nil
}

// Locality returns a place name for pt, or "" if pt is not on land.
func (rr *rR) Locality(pt orb.Point) (string, error) {
	loc, err := (*srgeo.Rgeo)(rr).ReverseGeocode(pt)
	if errors.Is(err, srgeo.ErrLocationNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return FormatLocation(loc), nil
}

// FormatLocation joins the city, province and country code of a location,
// skipping those that are empty.
func FormatLocation(loc srgeo.Location) string {
	var parts []string
	for _, s := range []string{loc.City, loc.Province, loc.CountryCode3} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
