// Package pbf loads the slice of an OSM PBF file the extractor needs: the
// relations selected by a predicate, plus every way and node they reference.
package pbf

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/open-dms/osmtools/internal/ctxlog"
)

// Dataset holds the decoded objects, indexed by id. Relations missing from
// the maps were filtered out; ways and nodes missing from the maps were not
// referenced by any kept relation (or are absent from the source file, which
// the extraction layer reports per relation).
type Dataset struct {
	Nodes     map[osm.NodeID]*osm.Node
	Ways      map[osm.WayID]*osm.Way
	Relations map[osm.RelationID]*osm.Relation
}

// Node resolves a node id. The second return value is false when the node is
// not part of the dataset.
func (d *Dataset) Node(id osm.NodeID) (*osm.Node, bool) {
	n, ok := d.Nodes[id]
	return n, ok
}

// Way resolves a way id.
func (d *Dataset) Way(id osm.WayID) (*osm.Way, bool) {
	w, ok := d.Ways[id]
	return w, ok
}

// Load scans the PBF file at path and returns the relations matching keep
// together with their dependencies. The file is scanned once per object type,
// because relations reference ways and ways reference nodes while the PBF
// format stores nodes first.
func Load(ctx context.Context, path string, keep func(*osm.Relation) bool) (*Dataset, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer f.Close()

	ds := &Dataset{
		Nodes:     make(map[osm.NodeID]*osm.Node),
		Ways:      make(map[osm.WayID]*osm.Way),
		Relations: make(map[osm.RelationID]*osm.Relation),
	}

	wantWays := make(map[osm.WayID]struct{})
	if err := scan(ctx, f, scanRelations, func(o osm.Object) {
		rel, ok := o.(*osm.Relation)
		if !ok || !keep(rel) {
			return
		}
		ds.Relations[rel.ID] = rel
		for _, member := range rel.Members {
			if member.Type == osm.TypeWay {
				wantWays[osm.WayID(member.Ref)] = struct{}{}
			}
		}
	}); err != nil {
		return nil, fmt.Errorf("scanning relations: %w", err)
	}
	logger.Debug("Relations scanned.", "kept", len(ds.Relations), "member_ways", len(wantWays))

	wantNodes := make(map[osm.NodeID]struct{})
	if err := scan(ctx, f, scanWays, func(o osm.Object) {
		way, ok := o.(*osm.Way)
		if !ok {
			return
		}
		if _, ok := wantWays[way.ID]; !ok {
			return
		}
		ds.Ways[way.ID] = way
		for _, wn := range way.Nodes {
			wantNodes[wn.ID] = struct{}{}
		}
	}); err != nil {
		return nil, fmt.Errorf("scanning ways: %w", err)
	}
	logger.Debug("Ways scanned.", "kept", len(ds.Ways), "member_nodes", len(wantNodes))

	if err := scan(ctx, f, scanNodes, func(o osm.Object) {
		node, ok := o.(*osm.Node)
		if !ok {
			return
		}
		if _, ok := wantNodes[node.ID]; ok {
			ds.Nodes[node.ID] = node
		}
	}); err != nil {
		return nil, fmt.Errorf("scanning nodes: %w", err)
	}
	logger.Debug("Nodes scanned.", "kept", len(ds.Nodes))

	return ds, nil
}

// LoadRelations scans only the relations matching keep, without resolving
// their member ways and nodes. The stats command needs nothing else.
func LoadRelations(ctx context.Context, path string, keep func(*osm.Relation) bool) (map[osm.RelationID]*osm.Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer f.Close()

	relations := make(map[osm.RelationID]*osm.Relation)
	if err := scan(ctx, f, scanRelations, func(o osm.Object) {
		rel, ok := o.(*osm.Relation)
		if ok && keep(rel) {
			relations[rel.ID] = rel
		}
	}); err != nil {
		return nil, fmt.Errorf("scanning relations: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Relations scanned.", "kept", len(relations))
	return relations, nil
}

type objectKind int

const (
	scanNodes objectKind = iota
	scanWays
	scanRelations
)

// scan runs one pass over the file for a single object type, rewinding first.
func scan(ctx context.Context, f *os.File, kind objectKind, visit func(osm.Object)) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	scanner := osmpbf.New(ctx, f, runtime.NumCPU())
	defer scanner.Close()

	scanner.SkipNodes = kind != scanNodes
	scanner.SkipWays = kind != scanWays
	scanner.SkipRelations = kind != scanRelations

	for scanner.Scan() {
		visit(scanner.Object())
	}

	return scanner.Err()
}
