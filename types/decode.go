package types

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/types/trackpoint"
	"github.com/tidwall/gjson"
	"github.com/tkrajina/gpxgo/gpx"
	"io"
	"time"
)

var ErrDecodeTracks = fmt.Errorf("could not decode as gpx or geojson or geojsonfc or ndgeojson or trackpoints")
var ErrNoPoints = errors.New("no track points")

// Format names a track file encoding.
type Format string

const (
	FormatAuto    Format = ""
	FormatGPX     Format = "gpx"
	FormatGeoJSON Format = "geojson"
)

// DecodeRawPoints reads a whole track in the given format.
// FormatAuto sniffs the first non-space byte: '<' is GPX, anything else JSON.
func DecodeRawPoints(r io.Reader, format Format) (trackpoint.RawPoints, error) {
	buf := bufio.NewReader(r)
	if format == FormatAuto {
		format = sniffFormat(buf)
	}
	var out trackpoint.RawPoints
	var err error
	switch format {
	case FormatGPX:
		out, err = DecodeGPX(buf)
	case FormatGeoJSON:
		err = ScanJSONMessages(buf, func(msg json.RawMessage) error {
			return DecodingJSONTrackObject(msg, func(p trackpoint.RawPoint) error {
				out = append(out, p)
				return nil
			})
		})
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrDecodeTracks, format)
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoPoints
	}
	return out, nil
}

func sniffFormat(buf *bufio.Reader) Format {
	for i := 1; i < 512; i++ {
		peek, err := buf.Peek(i)
		if err != nil {
			return FormatGeoJSON
		}
		switch c := peek[i-1]; c {
		case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF: // whitespace, BOM
			continue
		case '<':
			return FormatGPX
		default:
			return FormatGeoJSON
		}
	}
	return FormatGeoJSON
}

// DecodeGPX flattens all tracks and segments of a GPX document into one ordered point sequence.
// Points without a time are kept with a zero time; they are rejected downstream.
func DecodeGPX(r io.Reader) (trackpoint.RawPoints, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeTracks, err)
	}
	out := trackpoint.RawPoints{}
	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				rp := trackpoint.RawPoint{
					Lat:  p.Latitude,
					Lon:  p.Longitude,
					Time: p.Timestamp,
				}
				if p.Elevation.NotNull() {
					ele := p.Elevation.Value()
					rp.DeviceElevation = &ele
				}
				out = append(out, rp)
			}
		}
	}
	return out, nil
}

// ScanJSONMessages reads a stream of JSON messages from an io.Reader,
// and calls onEach for each decoded message.
// If the stream is encoded as a JSON array, this function will attempt
// to call onEach for each element in the array.
// A GeoJSON FeatureCollection is a single object, and will be treated as such;
// use DecodingJSONTrackObject to handle the 'features' within, in this case.
func ScanJSONMessages(body io.Reader, onEach func(message json.RawMessage) error) error {
	buf := bufio.NewReader(body)
	peek, err := buf.Peek(1)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewBuffer(peek))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	dec = json.NewDecoder(buf)
	if t == json.Delim('[') {
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	for dec.More() {
		var msg json.RawMessage
		err := dec.Decode(&msg)
		if err == nil {
			if err := onEach(msg); err != nil {
				return err
			}
			continue
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode err: %T %w", err, err)
		}
		break
	}
	return nil
}

// DecodingJSONTrackObject recursively decodes a JSON message into raw points.
// If the message is a FeatureCollection, it will call onEach for each feature.
// It assumes that the message is a single object, and will error if given an array.
func DecodingJSONTrackObject(msg json.RawMessage, onEach func(p trackpoint.RawPoint) error) error {
	parsed := gjson.ParseBytes(msg)

	// Must be an object.
	if parsed.IsArray() {
		return errors.New("unexpected array, want track object")
	}

	// Only GeoJSON objects will have 'type' attribute;
	// flat trackpoints will not.
	pType := parsed.Get("type") // eg. Feature|FeatureCollection

	if !pType.Exists() {
		p := trackpoint.RawPoint{}
		if err := json.Unmarshal([]byte(parsed.Raw), &p); err != nil {
			return err
		}
		return onEach(p)
	}

	switch pType.String() {
	case "FeatureCollection":
		feats := parsed.Get("features")
		if !feats.Exists() {
			return errors.New("no 'features' attribute present in feature collection")
		}
		for _, f := range feats.Array() {
			if err := DecodingJSONTrackObject([]byte(f.Raw), onEach); err != nil {
				return err
			}
		}
		return nil
	case "Feature":
		p, err := rawPointFromFeature(parsed)
		if err != nil {
			return err
		}
		return onEach(p)
	}
	return fmt.Errorf("%w: unsupported geojson type %q", ErrDecodeTracks, pType.String())
}

// rawPointFromFeature reads a cat track style Point feature.
// UnixTime is preferred over Time, which must be RFC3339.
// An unparseable time leaves the zero time in place.
func rawPointFromFeature(f gjson.Result) (trackpoint.RawPoint, error) {
	geom := f.Get("geometry")
	if geom.Get("type").String() != "Point" {
		return trackpoint.RawPoint{}, fmt.Errorf("%w: not a point", ErrDecodeTracks)
	}
	coords := geom.Get("coordinates").Array()
	if len(coords) < 2 {
		return trackpoint.RawPoint{}, fmt.Errorf("%w: bad coordinates", ErrDecodeTracks)
	}
	pt := orb.Point{coords[0].Float(), coords[1].Float()}
	rp := trackpoint.RawPoint{Lat: pt.Lat(), Lon: pt.Lon()}

	props := f.Get("properties")
	if unix := props.Get("UnixTime"); unix.Exists() && unix.Int() > 0 {
		rp.Time = time.Unix(unix.Int(), 0).UTC()
	} else if ts := props.Get("Time"); ts.Exists() {
		if t, err := time.Parse(time.RFC3339, ts.String()); err == nil {
			rp.Time = t
		}
	}

	if ele := props.Get("Elevation"); ele.Exists() && ele.Type == gjson.Number {
		v := ele.Float()
		rp.DeviceElevation = &v
	} else if len(coords) > 2 {
		v := coords[2].Float()
		rp.DeviceElevation = &v
	}
	return rp, nil
}
