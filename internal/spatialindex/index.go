// Package spatialindex answers viewport/bounds queries over a chart's
// resolved feature geometry using an R-tree, rather than a linear scan over
// every feature.
//
// This mirrors an rtreego-backed chart index keyed by whole-chart bounds,
// re-targeted to index one chart's individually resolved feature geometries
// instead.
package spatialindex

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/vesseltrace/enc57/internal/store"
	"github.com/vesseltrace/enc57/internal/tts"
)

// minExtent guards against rtreego rejecting a degenerate (zero-area) rect
// for a single-point feature.
const minExtent = 1e-9

// FeatureIndex is an R-tree over a chart's features, keyed by their
// resolved geometry's bounding box.
type FeatureIndex struct {
	tree *rtreego.Rtree
}

// New builds an empty index with rtreego's usual min/max branching factors
// (25/50).
func New() *FeatureIndex {
	return &FeatureIndex{tree: rtreego.NewTree(2, 25, 50)}
}

type entry struct {
	name   store.Name
	bounds rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.bounds }

// Insert adds name's resolved geometry to the index. A geometry with no
// points (a feature that failed to resolve) is silently skipped — it simply
// never shows up in a bounds query, which is the desired degradation for a
// feature whose geometry is in error.
func (idx *FeatureIndex) Insert(name store.Name, geom tts.Geometry) {
	minX, minY, maxX, maxY, ok := bounds(geom)
	if !ok {
		return
	}
	if maxX-minX < minExtent {
		maxX = minX + minExtent
	}
	if maxY-minY < minExtent {
		maxY = minY + minExtent
	}
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
	if err != nil {
		return
	}
	idx.tree.Insert(&entry{name: name, bounds: rect})
}

// Query returns every feature Name whose bounding box intersects the given
// viewport.
func (idx *FeatureIndex) Query(minX, minY, maxX, maxY float64) []store.Name {
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{math.Max(maxX-minX, minExtent), math.Max(maxY-minY, minExtent)})
	if err != nil {
		return nil
	}
	results := idx.tree.SearchIntersect(rect)
	names := make([]store.Name, 0, len(results))
	for _, r := range results {
		names = append(names, r.(*entry).name)
	}
	return names
}

// Count reports how many features are indexed.
func (idx *FeatureIndex) Count() int { return idx.tree.Size() }

func bounds(geom tts.Geometry) (minX, minY, maxX, maxY float64, ok bool) {
	first := true
	consider := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	switch geom.Kind {
	case tts.GeometryPoint:
		consider(geom.Point.X.Float64(), geom.Point.Y.Float64())
	case tts.GeometryLine:
		for _, line := range geom.Lines {
			for _, p := range line {
				consider(p.X.Float64(), p.Y.Float64())
			}
		}
	case tts.GeometryArea:
		for _, ring := range geom.Rings {
			for _, p := range ring.Points {
				consider(p.X.Float64(), p.Y.Float64())
			}
		}
	}
	return minX, minY, maxX, maxY, !first
}
