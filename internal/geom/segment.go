package geom

import "errors"

// ErrDegenerateSegment is returned when a boundary member resolves to fewer
// than two positions.
var ErrDegenerateSegment = errors.New("segment has fewer than two positions")

// Segment is an ordered, immutable sequence of at least two positions. It is
// the unit the ring assembler stitches; a segment whose first and last
// positions are equal is already a closed ring.
type Segment struct {
	positions []Position
}

// NewSegment builds a Segment from positions. It returns ErrDegenerateSegment
// when fewer than two positions are given.
func NewSegment(positions []Position) (Segment, error) {
	if len(positions) < 2 {
		return Segment{}, ErrDegenerateSegment
	}
	return Segment{positions: positions}, nil
}

// Start returns the first position of the segment.
func (s Segment) Start() Position { return s.positions[0] }

// End returns the last position of the segment.
func (s Segment) End() Position { return s.positions[len(s.positions)-1] }

// Len returns the number of positions in the segment.
func (s Segment) Len() int { return len(s.positions) }

// Positions returns the segment's positions. Callers must not mutate the
// returned slice.
func (s Segment) Positions() []Position { return s.positions }
