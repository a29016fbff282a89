package geom

// endpointIndex maps a position to the set of not-yet-consumed segment ids
// touching it. It is a multi-key-multi-value structure: every live segment id
// is registered under both of its endpoints, and consuming an id removes it
// from every bucket it appears in, not only the queried one. Without global
// removal a consumed segment could be found again at its other endpoint and
// corrupt the ring.
type endpointIndex struct {
	buckets map[Position][]int // ids in insertion order, used as the tie-break
	keys    map[int][]Position // id -> the bucket keys it is registered under
	live    int
}

func newEndpointIndex() *endpointIndex {
	return &endpointIndex{
		buckets: make(map[Position][]int),
		keys:    make(map[int][]Position),
	}
}

// insert registers a segment id under both its endpoints. A self-closed
// segment (start == end) registers once, so it cannot be counted twice.
func (idx *endpointIndex) insert(seg Segment, id int) {
	idx.insertAt(seg.Start(), id)
	if seg.End() != seg.Start() {
		idx.insertAt(seg.End(), id)
	}
	idx.live++
}

func (idx *endpointIndex) insertAt(pos Position, id int) {
	idx.buckets[pos] = append(idx.buckets[pos], id)
	idx.keys[id] = append(idx.keys[id], pos)
}

// consumeOne picks the live id with the lowest insertion index registered at
// pos, unregisters it everywhere, and returns it. The second return value is
// false when no live id remains at pos.
func (idx *endpointIndex) consumeOne(pos Position) (int, bool) {
	ids := idx.buckets[pos]
	if len(ids) == 0 {
		return 0, false
	}
	id := ids[0]

	for _, key := range idx.keys[id] {
		idx.buckets[key] = remove(idx.buckets[key], id)
		if len(idx.buckets[key]) == 0 {
			delete(idx.buckets, key)
		}
	}
	delete(idx.keys, id)
	idx.live--

	return id, true
}

// isEmpty reports whether every registered id has been consumed.
func (idx *endpointIndex) isEmpty() bool {
	return idx.live == 0
}

func remove(ids []int, id int) []int {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
