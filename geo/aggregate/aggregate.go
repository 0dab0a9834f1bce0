// Package aggregate folds enriched track points into Sections
// of (about) a target duration.
//
// Stationary skip points are never folded into a section. Each one closes any
// partly filled section and is emitted as its own skip singleton, interleaved
// at the position it occurs. Consecutive normal sections share one boundary
// coordinate: the point that follows a section is appended to its path,
// so profiles plotted over sections have no gaps.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/rotblauer/cathills/common"
	"github.com/rotblauer/cathills/params"
	"github.com/rotblauer/cathills/types/section"
	"github.com/rotblauer/cathills/types/trackpoint"
)

// ErrAnchorOutOfRange is an internal consistency error: a section anchor
// computed from the buffer length does not land on a buffered point.
var ErrAnchorOutOfRange = errors.New("section anchor out of range")

type buffer struct {
	// start is the stream position of points[0].
	start  int
	points []trackpoint.EnrichedPoint
	sec    int64
	distKm float64
	path   orb.LineString
}

func (b *buffer) add(p trackpoint.EnrichedPoint, k int) {
	if len(b.points) == 0 {
		b.start = k
	}
	b.points = append(b.points, p)
	b.sec += p.ElapsedFromPrev
	b.distKm += p.DistanceFromPrev
	b.path = append(b.path, p.Point())
}

func (b *buffer) len() int {
	return len(b.points)
}

// AnchorIndex is the stream position of the first point folded into a section
// closed at position k with bufLen buffered points.
// When the point at k is the skip point that forced the close, it is not in the buffer.
func AnchorIndex(k, bufLen int, currentSkip bool) int {
	anchor := k - bufLen + 1
	if currentSkip {
		anchor--
	}
	return anchor
}

type State struct {
	config *params.SectionConfig

	k   int
	buf buffer

	// pending holds the last closed section, waiting for its continuity point,
	// followed by any skip singleton emitted in the same step.
	pending    []section.Section
	continuity bool

	closed     int
	singletons int
	discarded  int

	err error
}

func NewState(config *params.SectionConfig) *State {
	if config == nil {
		config = params.DefaultSectionConfig()
	}
	return &State{config: config}
}

func (s *State) targetSec() int64 {
	return int64(s.config.TargetDuration / time.Second)
}

// Add folds the next point and returns any sections completed by it.
// A section is complete once its continuity point is known, so a section
// closed by point k is returned by the call for point k+1 (or by Finish).
func (s *State) Add(p trackpoint.EnrichedPoint) ([]section.Section, error) {
	if s.err != nil {
		return nil, s.err
	}
	k := s.k
	s.k++

	var out []section.Section
	if s.continuity {
		last := &s.pending[0]
		last.Path = append(last.Path, p.Point())
		last.End = p
		s.continuity = false
	}
	out = append(out, s.pending...)
	s.pending = nil

	if !p.Skip {
		s.buf.add(p, k)
	}

	if s.buf.len() > 0 && (s.buf.sec >= s.targetSec() || p.Skip) {
		sec, err := s.close(k, p.Skip)
		if err != nil {
			s.err = err
			return out, err
		}
		s.pending = append(s.pending, sec)
		s.continuity = true
	}

	if p.Skip {
		s.singletons++
		if s.continuity {
			s.pending = append(s.pending, section.NewSkipSingleton(p))
		} else {
			out = append(out, section.NewSkipSingleton(p))
		}
	}
	return out, nil
}

func (s *State) close(k int, currentSkip bool) (section.Section, error) {
	anchor := AnchorIndex(k, s.buf.len(), currentSkip)
	offset := anchor - s.buf.start
	if anchor < 0 || offset < 0 || offset >= s.buf.len() {
		return section.Section{}, fmt.Errorf("%w: anchor=%d k=%d buffered=%d from=%d",
			ErrAnchorOutOfRange, anchor, k, s.buf.len(), s.buf.start)
	}
	b := s.buf
	sec := section.Section{
		Anchor:         b.points[offset],
		End:            b.points[b.len()-1],
		PointCount:     b.len(),
		AggSec:         b.sec,
		AggDistKm:      b.distKm,
		AggVelocityKmh: common.KmhOf(b.distKm, b.sec),
		Path:           b.path,
	}
	s.buf = buffer{}
	s.closed++
	return sec, nil
}

// Finish ends the input and returns the remaining sections.
// A partly filled buffer is discarded unless FlushTrailing is set.
func (s *State) Finish() ([]section.Section, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.pending
	s.pending = nil
	s.continuity = false
	if s.buf.len() == 0 {
		return out, nil
	}
	if !s.config.FlushTrailing {
		s.discarded = s.buf.len()
		s.buf = buffer{}
		return out, nil
	}
	sec, err := s.close(s.k-1, false)
	if err != nil {
		s.err = err
		return out, err
	}
	return append(out, sec), nil
}

// Stats reports the sections closed, the skip singletons emitted,
// and the trailing points dropped by Finish.
func (s *State) Stats() (closed, singletons, discarded int) {
	return s.closed, s.singletons, s.discarded
}

// Err returns the error that stopped the state, if any.
func (s *State) Err() error {
	return s.err
}

// Stream consumes a channel of enriched points and emits sections.
// The output channel is closed when the input is exhausted, the context is done,
// or an error occurs; check Err afterward, an error is not sent on the channel.
func (s *State) Stream(ctx context.Context, in <-chan trackpoint.EnrichedPoint) <-chan section.Section {
	out := make(chan section.Section)
	send := func(secs []section.Section) bool {
		for _, sec := range secs {
			select {
			case out <- sec:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}
	go func() {
		defer close(out)
		for p := range in {
			secs, err := s.Add(p)
			if !send(secs) || err != nil {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
		secs, err := s.Finish()
		if !send(secs) || err != nil {
			return
		}
	}()
	return out
}

// Sections aggregates a whole track.
func Sections(points trackpoint.EnrichedPoints, config *params.SectionConfig) ([]section.Section, error) {
	s := NewState(config)
	out := make([]section.Section, 0, len(points)/4+1)
	for _, p := range points {
		secs, err := s.Add(p)
		if err != nil {
			return nil, err
		}
		out = append(out, secs...)
	}
	rest, err := s.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, rest...), nil
}
