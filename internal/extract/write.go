package extract

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"io"
	"slices"

	"github.com/paulmach/osm"

	"github.com/open-dms/osmtools/internal/ctxlog"
)

// WriteFeatures emits one GeoJSON feature per relation, line-delimited, in
// ascending relation-id order so output is reproducible. A relation that
// cannot be converted is logged with its cause and skipped; the batch
// continues with the next one.
func (e *Extractor) WriteFeatures(ctx context.Context, out io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	buffer := bufio.NewWriter(out)

	for _, rel := range e.relations() {
		feature, err := e.Feature(rel)
		if err != nil {
			logger.Error("Skipping relation.", "relation", rel.ID, "error", err)
			continue
		}

		serialized, err := json.Marshal(feature)
		if err != nil {
			logger.Error("Skipping relation.", "relation", rel.ID, "error", err)
			continue
		}

		if _, err := buffer.Write(append(serialized, '\n')); err != nil {
			return err
		}
	}

	return buffer.Flush()
}

// WriteRaw emits the decoded relations as line-delimited JSON, in ascending
// relation-id order.
func (e *Extractor) WriteRaw(ctx context.Context, out io.Writer) error {
	buffer := bufio.NewWriter(out)

	for _, rel := range e.relations() {
		serialized, err := json.Marshal(rel)
		if err != nil {
			return err
		}
		if _, err := buffer.Write(append(serialized, '\n')); err != nil {
			return err
		}
	}

	return buffer.Flush()
}

// relations returns the dataset's relations sorted by id.
func (e *Extractor) relations() []*osm.Relation {
	relations := make([]*osm.Relation, 0, len(e.dataset.Relations))
	for _, rel := range e.dataset.Relations {
		relations = append(relations, rel)
	}
	slices.SortFunc(relations, func(a, b *osm.Relation) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return relations
}
