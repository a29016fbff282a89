package extract

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-dms/osmtools/internal/geom"
	"github.com/open-dms/osmtools/internal/pbf"
)

const regionKey = "de:regionalschluessel"

func newDataset() *pbf.Dataset {
	return &pbf.Dataset{
		Nodes:     make(map[osm.NodeID]*osm.Node),
		Ways:      make(map[osm.WayID]*osm.Way),
		Relations: make(map[osm.RelationID]*osm.Relation),
	}
}

func addNode(ds *pbf.Dataset, id osm.NodeID, lon, lat float64) {
	ds.Nodes[id] = &osm.Node{ID: id, Lon: lon, Lat: lat}
}

func addWay(ds *pbf.Dataset, id osm.WayID, nodes ...osm.NodeID) {
	way := &osm.Way{ID: id}
	for _, n := range nodes {
		way.Nodes = append(way.Nodes, osm.WayNode{ID: n})
	}
	ds.Ways[id] = way
}

func boundaryRelation(id osm.RelationID, name string, members ...osm.Member) *osm.Relation {
	return &osm.Relation{
		ID: id,
		Tags: osm.Tags{
			{Key: "name", Value: name},
			{Key: "type", Value: "boundary"},
			{Key: "boundary", Value: "administrative"},
			{Key: "admin_level", Value: "6"},
			{Key: regionKey, Value: "057700000000"},
		},
		Members: members,
	}
}

func outer(wayID osm.WayID) osm.Member {
	return osm.Member{Type: osm.TypeWay, Ref: int64(wayID), Role: "outer"}
}

// squareDataset holds a unit square traced clockwise by three ways.
func squareDataset() *pbf.Dataset {
	ds := newDataset()
	addNode(ds, 1, 0, 0)
	addNode(ds, 2, 0, 1)
	addNode(ds, 3, 1, 1)
	addNode(ds, 4, 1, 0)
	addWay(ds, 10, 1, 2)
	addWay(ds, 11, 2, 3, 4)
	addWay(ds, 12, 4, 1)
	return ds
}

func TestPolygon(t *testing.T) {
	t.Run("assembles a closed counter-clockwise ring", func(t *testing.T) {
		ds := squareDataset()
		rel := boundaryRelation(100, "Square", outer(10), outer(11), outer(12))
		ds.Relations[rel.ID] = rel

		polygon, err := New(ds, regionKey, 0).Polygon(rel)
		require.NoError(t, err)
		require.Len(t, polygon, 1)

		ring := polygon[0]
		assert.Len(t, ring, 5)
		assert.Equal(t, ring[0], ring[len(ring)-1])
		// The input traces the square clockwise; normalization must have
		// reversed it.
		assert.True(t, ring.Orientation() == orb.CCW)
	})

	t.Run("inner members are discarded", func(t *testing.T) {
		ds := squareDataset()
		rel := boundaryRelation(100, "Square",
			outer(10), outer(11), outer(12),
			// References a way that does not exist; must not matter because
			// the role is not outer.
			osm.Member{Type: osm.TypeWay, Ref: 999, Role: "inner"},
			osm.Member{Type: osm.TypeNode, Ref: 1, Role: "admin_centre"},
		)

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.NoError(t, err)
	})

	t.Run("missing way", func(t *testing.T) {
		ds := squareDataset()
		rel := boundaryRelation(100, "Square", outer(10), outer(999))

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.ErrorIs(t, err, ErrUnresolvedMember)
	})

	t.Run("missing node", func(t *testing.T) {
		ds := squareDataset()
		addWay(ds, 13, 1, 77)
		rel := boundaryRelation(100, "Square", outer(13))

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.ErrorIs(t, err, ErrUnresolvedMember)
	})

	t.Run("no outer members", func(t *testing.T) {
		ds := squareDataset()
		rel := boundaryRelation(100, "Square")

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.ErrorIs(t, err, ErrMissingBoundaryMembers)
	})

	t.Run("way with a single node", func(t *testing.T) {
		ds := squareDataset()
		addWay(ds, 14, 1)
		rel := boundaryRelation(100, "Square", outer(14))

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.ErrorIs(t, err, geom.ErrDegenerateSegment)
	})

	t.Run("disconnected outer ways", func(t *testing.T) {
		ds := squareDataset()
		addNode(ds, 5, 5, 5)
		addNode(ds, 6, 6, 6)
		addWay(ds, 15, 5, 6)
		rel := boundaryRelation(100, "Square", outer(10), outer(15))

		_, err := New(ds, regionKey, 0).Polygon(rel)
		assert.ErrorIs(t, err, geom.ErrNoMatchingSegment)
	})

	t.Run("simplification drops collinear points", func(t *testing.T) {
		ds := squareDataset()
		// An extra node on the edge between nodes 2 and 3.
		addNode(ds, 7, 0.5, 1)
		addWay(ds, 16, 2, 7, 3)
		addWay(ds, 17, 3, 4)
		rel := boundaryRelation(100, "Square", outer(10), outer(16), outer(17), outer(12))

		plain, err := New(ds, regionKey, 0).Polygon(rel)
		require.NoError(t, err)

		simplified, err := New(ds, regionKey, 0.01).Polygon(rel)
		require.NoError(t, err)
		assert.Less(t, len(simplified[0]), len(plain[0]))
	})
}

func TestFeature(t *testing.T) {
	ds := squareDataset()
	rel := boundaryRelation(100, "Harz", outer(10), outer(11), outer(12))
	rel.Tags = append(rel.Tags, osm.Tag{Key: "name:prefix", Value: "Landkreis"})
	ds.Relations[rel.ID] = rel

	t.Run("builds feature with properties", func(t *testing.T) {
		feature, err := New(ds, regionKey, 0).Feature(rel)
		require.NoError(t, err)

		assert.Equal(t, int64(100), feature.ID)
		assert.Equal(t, "Landkreis Harz", feature.Properties["name"])
		assert.Equal(t, 6, feature.Properties["adminLevel"])
		assert.Equal(t, "057700000000", feature.Properties["ars"])

		_, ok := feature.Geometry.(orb.Polygon)
		assert.True(t, ok)
	})

	t.Run("missing name", func(t *testing.T) {
		broken := boundaryRelation(101, "", outer(10))
		_, err := New(ds, regionKey, 0).Feature(broken)
		assert.ErrorContains(t, err, "'name' is missing")
	})

	t.Run("missing region key", func(t *testing.T) {
		broken := &osm.Relation{
			ID: 102,
			Tags: osm.Tags{
				{Key: "name", Value: "Nowhere"},
				{Key: "admin_level", Value: "6"},
			},
		}
		_, err := New(ds, regionKey, 0).Feature(broken)
		assert.ErrorContains(t, err, regionKey)
	})

	t.Run("invalid admin level", func(t *testing.T) {
		broken := boundaryRelation(103, "Nowhere", outer(10))
		for i, tag := range broken.Tags {
			if tag.Key == "admin_level" {
				broken.Tags[i].Value = "abc"
			}
		}
		_, err := New(ds, regionKey, 0).Feature(broken)
		assert.ErrorContains(t, err, "admin_level")
	})
}
