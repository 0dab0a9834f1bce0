package influxdb

import (
	"errors"
	"strconv"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/hill"
)

var ErrNotConfigured = errors.New("influxdb not configured")

func hillPoint(r hill.Record) *write.Point {
	p := influxdb2.NewPointWithMeasurement("hill").
		SetTime(r.Start).
		AddTag("track", r.TrackID).
		AddTag("direction", strconv.Itoa(r.Direction)).
		AddField("anchor", r.AnchorIndex).
		AddField("latitude", r.Lat).
		AddField("longitude", r.Lon).
		AddField("rows", r.RowCount).
		AddField("duration", r.Sec).
		AddField("distance_m", r.DistM)
	if r.ElevationDeltaM != nil {
		p.AddField("elevation_delta", *r.ElevationDeltaM)
	}
	if r.GradePercent != nil {
		p.AddField("grade", *r.GradePercent)
	}
	if r.Locality != "" {
		p.AddTag("locality", r.Locality)
	}
	return p
}

// ExportHills posts hill records to an InfluxDB Write API.
// The Write API will buffer and flush.
// The last error encountered is returned.
func ExportHills(config *params.InfluxConfig, records []hill.Record) error {
	if !config.Valid() {
		return ErrNotConfigured
	}
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Second)
	client := influxdb2.NewClientWithOptions(config.URL, config.Token, opts)
	writeAPI := client.WriteAPI(config.Org, config.Bucket)

	// Errors must be drained or the writer will block.
	// https://github.com/influxdata/influxdb-client-go?tab=readme-ov-file#reading-async-errors
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	for _, r := range records {
		writeAPI.WritePoint(hillPoint(r))
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
