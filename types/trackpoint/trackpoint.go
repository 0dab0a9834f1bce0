package trackpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/cathills/common"
	"time"
)

// ErrInvalidTimestamp is returned when a point's time is missing, unparseable,
// or earlier than the time of the point before it.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// RawPoint is one timestamped GPS fix as recorded by a device.
type RawPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"long"`

	// DeviceElevation is the elevation reported by the GPS device.
	// It is often absent and rarely reliable; terrain elevation is preferred.
	DeviceElevation *float64 `json:"elevation,omitempty"`

	Time time.Time `json:"time"`
}

// UnmarshalJSON is a custom unmarshaler for RawPoint.
// It asserts that the Time field is a valid RFC3339 time.
// If this method attempts to unmarshal data which is actually a GeoJSON Feature
// it will fail, as the GeoJSON Feature will not have a flat time field.
func (p *RawPoint) UnmarshalJSON(data []byte) error {
	type Alias RawPoint
	aux := &struct {
		Time string `json:"time"`
		*Alias
	}{
		Alias: (*Alias)(p),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	p.Time, err = time.Parse(time.RFC3339, aux.Time)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return nil
}

// Point returns the (lon,lat) orb point.
func (p RawPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// EnrichedPoint is a RawPoint with the kinematics derived from it and its predecessor.
// It is created once and never mutated afterward.
type EnrichedPoint struct {
	RawPoint

	// Index is the position k in the track, starting at 0.
	Index int

	// TerrainElevation in meters, or nil if the elevation service could not resolve it.
	TerrainElevation *float64

	// DistanceFromPrev in km. Zero for the first point.
	DistanceFromPrev float64

	// ElapsedFromPrev in whole seconds. Zero for the first point.
	ElapsedFromPrev int64

	// VelocityKmh is nil when no time elapsed since the previous point.
	VelocityKmh *float64

	// Skip marks a stationary point excluded from normal section aggregation.
	Skip bool
}

func (p EnrichedPoint) StringPretty() string {
	v := "-"
	if p.VelocityKmh != nil {
		v = fmt.Sprintf("%.1fkm/h", *p.VelocityKmh)
	}
	ele := "?"
	if p.TerrainElevation != nil {
		ele = fmt.Sprintf("%.0fm", *p.TerrainElevation)
	}
	return fmt.Sprintf("#%d %s [%v,%v] %s %dm +%ds %s skip=%t",
		p.Index,
		p.Time.In(time.Local).Format("15:04:05"),
		common.DecimalToFixed(p.Lat, common.GPSPrecision5),
		common.DecimalToFixed(p.Lon, common.GPSPrecision5),
		ele,
		common.Round(1000*p.DistanceFromPrev),
		p.ElapsedFromPrev,
		v,
		p.Skip,
	)
}

// Feature returns the point as a GeoJSON feature with its kinematics as properties.
func (p EnrichedPoint) Feature() *geojson.Feature {
	f := geojson.NewFeature(p.Point())
	f.Properties["Index"] = p.Index
	f.Properties["UnixTime"] = p.Time.Unix()
	f.Properties["Time"] = p.Time.Format(time.RFC3339)
	f.Properties["Distance"] = p.DistanceFromPrev
	f.Properties["Elapsed"] = p.ElapsedFromPrev
	f.Properties["Skip"] = p.Skip
	if p.TerrainElevation != nil {
		f.Properties["Elevation_Terrain"] = *p.TerrainElevation
	}
	if p.DeviceElevation != nil {
		f.Properties["Elevation_Device"] = *p.DeviceElevation
	}
	if p.VelocityKmh != nil {
		f.Properties["Velocity"] = common.DecimalToFixed(*p.VelocityKmh, 2)
	}
	return f
}

type RawPoints []RawPoint
type EnrichedPoints []EnrichedPoint

// TotalDistance sums DistanceFromPrev over all points, in km.
func (ps EnrichedPoints) TotalDistance() (km float64) {
	for _, p := range ps {
		km += p.DistanceFromPrev
	}
	return km
}
