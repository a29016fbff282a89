package geom

import "errors"

var (
	// ErrNoMatchingSegment means assembly reached a ring end with no
	// remaining candidate touching it.
	ErrNoMatchingSegment = errors.New("no matching segment at ring end")

	// ErrNonContinuousPath means a candidate reported by the endpoint index
	// does not actually share an endpoint with the ring. This guards against
	// index inconsistencies and should not trigger on well-formed input.
	ErrNonContinuousPath = errors.New("segments do not form a continuous path")

	// ErrUnclosedRing means every segment was consumed but the result does
	// not close on itself.
	ErrUnclosedRing = errors.New("segments do not close into a ring")

	// ErrNoSegments means assembly was attempted with no segments at all.
	ErrNoSegments = errors.New("no segments to assemble")
)

// Ring is a closed sequence of positions: the first and last entry are equal.
type Ring []Position

// AssembleRing stitches the given segments into one continuous closed ring.
// Segments may arrive in any order and either orientation; each is consumed
// exactly once. The first segment seeds the ring and the rest are spliced on
// greedily by matching endpoints. When several segments touch the ring end the
// one inserted earliest wins, so output is deterministic for a given input
// even though genuinely ambiguous junctions are resolved arbitrarily.
func AssembleRing(segments []Segment) (Ring, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	idx := newEndpointIndex()
	for i, seg := range segments[1:] {
		idx.insert(seg, i+1)
	}

	ring := append(Ring(nil), segments[0].Positions()...)

	for !idx.isEmpty() {
		id, ok := idx.consumeOne(ring[len(ring)-1])
		if !ok {
			return nil, ErrNoMatchingSegment
		}

		var err error
		ring, err = splice(ring, segments[id])
		if err != nil {
			return nil, err
		}
	}

	if ring[0] != ring[len(ring)-1] {
		return nil, ErrUnclosedRing
	}

	return ring, nil
}

// splice appends a segment onto the ring end, reversing the segment when its
// end rather than its start touches the ring. The shared position is not
// duplicated.
func splice(ring Ring, seg Segment) (Ring, error) {
	end := ring[len(ring)-1]
	positions := seg.Positions()

	switch end {
	case seg.Start():
		ring = append(ring, positions[1:]...)
	case seg.End():
		for i := len(positions) - 2; i >= 0; i-- {
			ring = append(ring, positions[i])
		}
	default:
		return nil, ErrNonContinuousPath
	}

	return ring, nil
}

// IsClockwise reports the winding direction of the ring using the shoelace
// formula over consecutive position pairs, treating the ring cyclically. A
// signed area of exactly zero (fewer than three distinct points) counts as
// counter-clockwise; changing that tie-break would flip the direction of
// degenerate rings on re-normalization.
func (r Ring) IsClockwise() bool {
	var sum float64
	for i, cur := range r {
		next := r[(i+1)%len(r)]
		sum += (next.X() - cur.X()) * (next.Y() + cur.Y())
	}
	return sum > 0
}

// NormalizeWinding reverses the ring in place when it is wound clockwise, so
// that exterior rings follow the right-hand rule (counter-clockwise).
func (r Ring) NormalizeWinding() {
	if !r.IsClockwise() {
		return
	}
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}
