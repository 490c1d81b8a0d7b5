/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package polygon

import (
	"errors"
	"log/slog"

	"golabel/internal/annotation"
	"golabel/internal/event"
	"golabel/internal/geom"
)

var (
	// ErrMergeSelection is returned when fewer than two records are
	// selected for a merge.
	ErrMergeSelection = errors.New("polygon: merge needs at least two selected records")
	// ErrSplitSelection is returned when the selection is not exactly
	// one multi-polygon.
	ErrSplitSelection = errors.New("polygon: split needs exactly one selected multi-polygon")
)

// Merge combines all selected records into one multi-polygon. Rings of
// already-merged members are flattened in, the originals leave the set,
// and the merged record's id is derived deterministically from the
// source ids so repeating the merge yields the same identity.
func (c *Controller) Merge() (*annotation.Polygon, error) {
	sel := c.shapes.Selection()
	if len(sel) < 2 {
		return nil, ErrMergeSelection
	}
	var (
		removed []*annotation.Polygon
		rings   []geom.Ring
		color   string
	)
	for _, id := range sel {
		rec, ok := c.set.Get(id)
		if !ok {
			continue
		}
		if color == "" {
			color = rec.Color()
		}
		rings = append(rings, rec.Rings()...)
		removed = append(removed, rec)
	}
	if len(removed) < 2 {
		return nil, ErrMergeSelection
	}
	merged := annotation.NewMultiPolygon(annotation.MergedID(sel), rings, color)

	for _, rec := range removed {
		c.set.Delete(rec.RecordID())
	}
	c.set.Add(merged)
	c.shapes.Select(merged.RecordID())

	c.log.Info("merged polygons",
		slog.Int("sources", len(removed)),
		slog.String("id", merged.RecordID()))
	c.emit(Event{Kind: event.Delete, Records: removed})
	c.emit(Event{Kind: event.Create, Records: []*annotation.Polygon{merged}})
	c.emit(Event{Kind: event.Selection, Records: []*annotation.Polygon{merged}})
	return merged, nil
}

// Split breaks the single selected multi-polygon back into one simple
// polygon per ring. Ring ids are derived from the source id and ring
// index, so a merge followed by a split is reproducible.
func (c *Controller) Split() ([]*annotation.Polygon, error) {
	sel := c.shapes.Selection()
	if len(sel) != 1 {
		return nil, ErrSplitSelection
	}
	rec, ok := c.set.Get(sel[0])
	if !ok || rec.Kind() != annotation.GeometryMultiPolygon {
		return nil, ErrSplitSelection
	}

	rings := rec.Rings()
	c.set.Delete(rec.RecordID())

	parts := make([]*annotation.Polygon, 0, len(rings))
	ids := make([]string, 0, len(rings))
	for i, ring := range rings {
		part := annotation.NewPolygonWithID(annotation.SplitID(rec.RecordID(), i), ring, rec.Color())
		c.set.Add(part)
		parts = append(parts, part)
		ids = append(ids, part.RecordID())
	}
	c.shapes.Select(ids...)

	c.log.Info("split multi-polygon",
		slog.String("id", rec.RecordID()),
		slog.Int("parts", len(parts)))
	c.emit(Event{Kind: event.Delete, Records: []*annotation.Polygon{rec}})
	c.emit(Event{Kind: event.Create, Records: parts})
	c.emit(Event{Kind: event.Selection, Records: parts})
	return parts, nil
}
