package cache

import (
	"testing"
	"time"

	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/trackpoint"
)

func TestDedupePassLRU(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	a := trackpoint.RawPoint{Lat: 50, Lon: 14, Time: t0, DeviceElevation: common.Float64(100)}
	b := trackpoint.RawPoint{Lat: 50.0001, Lon: 14, Time: t0.Add(time.Second), DeviceElevation: common.Float64(100)}

	pass := NewDedupePassLRUFunc(2)
	if !pass(a) || !pass(b) {
		t.Fatal("first sightings should pass")
	}
	dup := a
	dup.DeviceElevation = common.Float64(100)
	if pass(dup) {
		t.Error("duplicate should not pass")
	}
}

func TestFingerprint(t *testing.T) {
	points := trackpoint.RawPoints{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	config := params.DefaultAnalyzeConfig()

	f1, err := Fingerprint(points, config)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := Fingerprint(points, params.DefaultAnalyzeConfig())
	if f1 != f2 {
		t.Error("equal inputs should have equal fingerprints")
	}
	config.Sections.FlushTrailing = true
	f3, _ := Fingerprint(points, config)
	if f1 == f3 {
		t.Error("config change should change the fingerprint")
	}
}
