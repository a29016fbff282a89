// Package stats summarizes the boundary relations found in a dataset.
package stats

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/paulmach/osm"
)

// Write tallies the value of the "boundary" tag across the given relations
// and writes one "value count" line per tag value, most frequent first. Ties
// are broken by tag value so output is stable.
func Write(out io.Writer, relations map[osm.RelationID]*osm.Relation) error {
	counts := make(map[string]int)
	for _, rel := range relations {
		if boundary := rel.Tags.Find("boundary"); boundary != "" {
			counts[boundary]++
		}
	}

	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, entry{value, count})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.value, b.value)
	})

	buffer := bufio.NewWriter(out)
	for _, e := range entries {
		if _, err := fmt.Fprintf(buffer, "%s %d\n", e.value, e.count); err != nil {
			return err
		}
	}

	return buffer.Flush()
}
