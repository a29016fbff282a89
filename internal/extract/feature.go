package extract

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
)

// Feature builds the GeoJSON feature for one relation: the assembled exterior
// ring plus the name, adminLevel and ars properties.
func (e *Extractor) Feature(rel *osm.Relation) (*geojson.Feature, error) {
	name := rel.Tags.Find("name")
	if name == "" {
		return nil, errors.New("'name' is missing")
	}
	if prefix := rel.Tags.Find("name:prefix"); prefix != "" {
		name = prefix + " " + name
	}

	level, err := adminLevel(rel.Tags)
	if err != nil {
		return nil, err
	}

	ars := rel.Tags.Find(e.regionKey)
	if ars == "" {
		return nil, fmt.Errorf("%q is missing", e.regionKey)
	}

	polygon, err := e.Polygon(rel)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to polygon: %w", name, err)
	}

	feature := geojson.NewFeature(polygon)
	feature.ID = int64(rel.ID)
	feature.Properties = geojson.Properties{
		"name":       name,
		"adminLevel": level,
		"ars":        ars,
	}

	return feature, nil
}

func adminLevel(tags osm.Tags) (int, error) {
	raw := tags.Find("admin_level")
	if raw == "" {
		return 0, errors.New("'admin_level' is missing")
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid admin_level %q: %w", raw, err)
	}
	return level, nil
}
