// Package extract turns qualifying boundary relations into polygon features.
// It orchestrates one ring assembly per relation: collect the outer-role way
// members, resolve them against the dataset, stitch them into a closed ring,
// normalize winding, and emit a GeoJSON feature. A malformed relation is
// reported and skipped; it never aborts the batch.
package extract

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/paulmach/osm"

	"github.com/open-dms/osmtools/internal/geom"
	"github.com/open-dms/osmtools/internal/pbf"
)

var (
	// ErrMissingBoundaryMembers means a relation has no outer-role way
	// members to assemble.
	ErrMissingBoundaryMembers = errors.New("relation has no outer boundary members")

	// ErrUnresolvedMember means a referenced way or node is absent from the
	// decoded dataset.
	ErrUnresolvedMember = errors.New("member is missing from the dataset")
)

// Extractor builds polygon features from relations in a dataset. It carries
// no per-relation state; every call works on data local to one relation.
type Extractor struct {
	dataset           *pbf.Dataset
	regionKey         string
	simplifyTolerance float64
}

// New creates an Extractor. regionKey names the tag written to the "ars"
// property. simplifyTolerance > 0 enables Douglas-Peucker simplification of
// the assembled ring, in degrees.
func New(dataset *pbf.Dataset, regionKey string, simplifyTolerance float64) *Extractor {
	return &Extractor{
		dataset:           dataset,
		regionKey:         regionKey,
		simplifyTolerance: simplifyTolerance,
	}
}

// Polygon assembles the relation's outer boundary into a single closed,
// counter-clockwise exterior ring. Inner-role members are read but discarded;
// hole reconstruction is intentionally not implemented.
func (e *Extractor) Polygon(rel *osm.Relation) (orb.Polygon, error) {
	var segments []geom.Segment

	for _, member := range rel.Members {
		if member.Type != osm.TypeWay || member.Role != "outer" {
			continue
		}

		wayID := osm.WayID(member.Ref)
		way, ok := e.dataset.Way(wayID)
		if !ok {
			return nil, fmt.Errorf("way %d: %w", wayID, ErrUnresolvedMember)
		}

		seg, err := e.segment(way)
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", wayID, err)
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return nil, ErrMissingBoundaryMembers
	}

	ring, err := geom.AssembleRing(segments)
	if err != nil {
		return nil, err
	}
	ring.NormalizeWinding()

	polygon := orb.Polygon{orbRing(ring)}
	if e.simplifyTolerance > 0 {
		polygon = simplify.DouglasPeucker(e.simplifyTolerance).Polygon(polygon)
	}

	return polygon, nil
}

// segment resolves a way's node references into an assembler segment.
func (e *Extractor) segment(way *osm.Way) (geom.Segment, error) {
	positions := make([]geom.Position, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		node, ok := e.dataset.Node(wn.ID)
		if !ok {
			return geom.Segment{}, fmt.Errorf("node %d: %w", wn.ID, ErrUnresolvedMember)
		}
		positions = append(positions, geom.NewPosition(node.Lon, node.Lat))
	}
	return geom.NewSegment(positions)
}

// orbRing converts the fixed-point ring to float degrees for output.
func orbRing(ring geom.Ring) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = orb.Point{p.X(), p.Y()}
	}
	return out
}
