// Package state persists analysis summaries and hill records in a bbolt DB,
// with hill starts indexed by S2 cell for proximity lookups.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rotblauer/cathills/catz"
	"github.com/rotblauer/cathills/conceptual"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/s2"
	"github.com/rotblauer/cathills/types/hill"
	"go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

type State struct {
	DB    *bbolt.DB
	Flat  *catz.Flat
	rOnly bool
}

// Open opens (creating if needed) the state DB under root.
// Opening a writable DB blocks other writers and readers with a file lock.
func Open(root string, readOnly bool) (*State, error) {
	flat := catz.NewFlatWithRoot(root)
	if !readOnly {
		if err := flat.MkdirAll(); err != nil {
			return nil, err
		}
	} else if !flat.Exists() {
		return nil, fmt.Errorf("%w: %s", os.ErrNotExist, flat.Path())
	}
	db, err := bbolt.Open(filepath.Join(flat.Path(), params.StateDBName), 0600, &bbolt.Options{
		ReadOnly: readOnly,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	s := &State{DB: db, Flat: flat, rOnly: readOnly}
	if readOnly {
		return s, nil
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{params.StateBucketSummaries, params.StateBucketHills, params.StateBucketHillsS2} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *State) Close() error {
	return s.DB.Close()
}

// TrackFlat returns the flat file directory for a track's output files.
func (s *State) TrackFlat(id conceptual.TrackID) *catz.Flat {
	return catz.NewFlatWithRoot(s.Flat.Path()).Joins(params.TracksDir, id.String())
}

// Summary is the stored outcome of one analysis run.
type Summary struct {
	TrackID conceptual.TrackID `json:"track"`

	// Fingerprint hashes the decoded input together with the analysis config.
	// An equal fingerprint means the stored analysis is current.
	Fingerprint uint64 `json:"fingerprint"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Points     int     `json:"points"`
	Sections   int     `json:"sections"`
	Hills      int     `json:"hills"`
	DistanceKm float64 `json:"distance_km"`
	AscentM    float64 `json:"ascent_m"`
	DescentM   float64 `json:"descent_m"`

	StoredAt time.Time `json:"stored_at"`
}

func (s *State) PutSummary(sum Summary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(params.StateBucketSummaries).Put([]byte(sum.TrackID), data)
	})
}

func (s *State) GetSummary(id conceptual.TrackID) (Summary, error) {
	var sum Summary
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.StateBucketSummaries)
		if b == nil {
			return ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: summary %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &sum)
	})
	return sum, err
}

// Summaries returns every stored summary, ordered by track id.
func (s *State) Summaries() ([]Summary, error) {
	var out []Summary
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.StateBucketSummaries)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var sum Summary
			if err := json.Unmarshal(v, &sum); err != nil {
				return err
			}
			out = append(out, sum)
			return nil
		})
	})
	return out, err
}

func hillIndexKey(token string, r hill.Record) []byte {
	return []byte(fmt.Sprintf("%s/%s/%08d", token, r.TrackID, r.AnchorIndex))
}

// PutHills replaces the stored hill records of a track, and their index entries.
func (s *State) PutHills(id conceptual.TrackID, records []hill.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		hills := tx.Bucket(params.StateBucketHills)
		index := tx.Bucket(params.StateBucketHillsS2)

		if old := hills.Get([]byte(id)); old != nil {
			var prev []hill.Record
			if err := json.Unmarshal(old, &prev); err != nil {
				return err
			}
			for _, r := range prev {
				if err := index.Delete(hillIndexKey(s2.CellTokenForPointLevel(r.Point(), params.S2HillIndexLevel), r)); err != nil {
					return err
				}
			}
		}
		if err := hills.Put([]byte(id), data); err != nil {
			return err
		}
		for _, r := range records {
			v, err := json.Marshal(r)
			if err != nil {
				return err
			}
			token := s2.CellTokenForPointLevel(r.Point(), params.S2HillIndexLevel)
			if err := index.Put(hillIndexKey(token, r), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *State) GetHills(id conceptual.TrackID) ([]hill.Record, error) {
	var out []hill.Record
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.StateBucketHills)
		if b == nil {
			return ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: hills %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &out)
	})
	return out, err
}

// HillsNear returns the stored hills starting in the S2 cell containing pt,
// or one of its neighbours, ordered by distance from pt.
func (s *State) HillsNear(pt orb.Point) ([]hill.Record, error) {
	var out []hill.Record
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.StateBucketHillsS2)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for _, token := range s2.NeighborTokens(pt, params.S2HillIndexLevel) {
			prefix := []byte(token + "/")
			for k, v := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), string(prefix)); k, v = c.Next() {
				var r hill.Record
				if err := json.Unmarshal(v, &r); err != nil {
					return err
				}
				out = append(out, r)
			}
		}
		return nil
	})
	sortByDistance(pt, out)
	return out, err
}

func sortByDistance(pt orb.Point, records []hill.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return geo.Distance(pt, records[i].Point()) < geo.Distance(pt, records[j].Point())
	})
}
