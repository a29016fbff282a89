package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSegment(t *testing.T, positions ...Position) Segment {
	t.Helper()
	seg, err := NewSegment(positions)
	require.NoError(t, err)
	return seg
}

func TestEndpointIndexConsumeRemovesGlobally(t *testing.T) {
	p1 := NewPosition(0, 0)
	p2 := NewPosition(1, 0)

	idx := newEndpointIndex()
	idx.insert(mustSegment(t, p1, p2), 7)

	// Consuming at one endpoint must make the id unreachable at the other.
	id, ok := idx.consumeOne(p1)
	require.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = idx.consumeOne(p2)
	assert.False(t, ok)
}

func TestEndpointIndexTieBreakIsInsertionOrder(t *testing.T) {
	p1 := NewPosition(0, 0)
	p2 := NewPosition(1, 0)
	p3 := NewPosition(2, 0)

	idx := newEndpointIndex()
	idx.insert(mustSegment(t, p1, p2), 1)
	idx.insert(mustSegment(t, p1, p3), 2)

	id, ok := idx.consumeOne(p1)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = idx.consumeOne(p1)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestEndpointIndexSelfClosedSegmentRegistersOnce(t *testing.T) {
	p1 := NewPosition(0, 0)
	p2 := NewPosition(1, 0)

	idx := newEndpointIndex()
	idx.insert(mustSegment(t, p1, p2, p1), 1)

	assert.Len(t, idx.buckets[p1], 1)

	_, ok := idx.consumeOne(p1)
	require.True(t, ok)
	assert.True(t, idx.isEmpty())
}

func TestEndpointIndexIsEmpty(t *testing.T) {
	p1 := NewPosition(0, 0)
	p2 := NewPosition(1, 0)

	idx := newEndpointIndex()
	assert.True(t, idx.isEmpty())

	idx.insert(mustSegment(t, p1, p2), 1)
	assert.False(t, idx.isEmpty())

	_, ok := idx.consumeOne(p2)
	require.True(t, ok)
	assert.True(t, idx.isEmpty())
}

func TestEndpointIndexMissingPosition(t *testing.T) {
	idx := newEndpointIndex()
	idx.insert(mustSegment(t, NewPosition(0, 0), NewPosition(1, 0)), 1)

	_, ok := idx.consumeOne(NewPosition(5, 5))
	assert.False(t, ok)
}
