package influxdb

import (
	"errors"
	"testing"
	"time"

	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/hill"
)

func TestHillPoint(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	p := hillPoint(hill.Record{
		TrackID:         "ride",
		AnchorIndex:     3,
		Start:           start,
		Direction:       1,
		RowCount:        2,
		Sec:             120,
		DistM:           400,
		ElevationDeltaM: common.Float64(40),
		GradePercent:    common.Float64(10),
	})
	if p.Name() != "hill" || !p.Time().Equal(start) {
		t.Errorf("point = %s at %v", p.Name(), p.Time())
	}
	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["track"] != "ride" || tags["direction"] != "1" {
		t.Errorf("tags = %v", tags)
	}
	if _, ok := tags["locality"]; ok {
		t.Error("empty locality should not be tagged")
	}
	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	if fields["grade"] != 10.0 || fields["elevation_delta"] != 40.0 {
		t.Errorf("fields = %v", fields)
	}

	unknown := hillPoint(hill.Record{TrackID: "ride", Start: start})
	for _, f := range unknown.FieldList() {
		if f.Key == "grade" || f.Key == "elevation_delta" {
			t.Errorf("unexpected field %s", f.Key)
		}
	}
}

func TestExportHillsNotConfigured(t *testing.T) {
	if err := ExportHills(&params.InfluxConfig{}, nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v", err)
	}
}
