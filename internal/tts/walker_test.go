package tts

import (
	"testing"

	"github.com/vesseltrace/enc57/internal/coord"
	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/store"
)

func point(x, y int64) coord.Point {
	return coord.Point{X: coord.FromInt(x), Y: coord.FromInt(y)}
}

func newNode(st *store.Store, rcid uint32, p coord.Point) store.Name {
	n := store.NewName(store.RCNMIsolatedNode, rcid)
	st.CreateVector(store.VectorMeta{Name: n, Kind: store.KindIsolatedNode})
	st.SetPositions(n, store.ExactPositions{Points: []coord.Point{p}})
	return n
}

func newEdge(st *store.Store, rcid uint32, start, end store.Name) store.Name {
	n := store.NewName(store.RCNMEdge, rcid)
	st.CreateVector(store.VectorMeta{Name: n, Kind: store.KindEdge})
	st.SetTopology(n, store.VectorTopology{Pointers: []store.VectorPointer{
		{Target: start, Topology: store.TopiBeginningNode},
		{Target: end, Topology: store.TopiEndNode},
	}})
	return n
}

func fwd(edge store.Name, usage store.UsageIndicator) store.FeaturePointer {
	return store.FeaturePointer{Target: edge, Orientation: store.OrientationForward, Usage: usage}
}

func rev(edge store.Name, usage store.UsageIndicator) store.FeaturePointer {
	return store.FeaturePointer{Target: edge, Orientation: store.OrientationReverse, Usage: usage}
}

func TestResolveAreaTriangle(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(0, 0))
	n2 := newNode(st, 2, point(4, 0))
	n3 := newNode(st, 3, point(0, 3))
	e1 := newEdge(st, 11, n1, n2)
	e2 := newEdge(st, 12, n2, n3)
	e3 := newEdge(st, 13, n3, n1)

	feature := store.NewName(store.RCNMFeature, 100)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveArea})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageExterior), fwd(e2, store.UsageExterior), fwd(e3, store.UsageExterior),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Kind != GeometryArea {
		t.Fatalf("Kind = %v, want GeometryArea", geom.Kind)
	}
	if len(geom.Rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(geom.Rings))
	}
	ring := geom.Rings[0]
	if len(ring.Points) != 4 {
		t.Fatalf("ring has %d points, want 4 (triangle + closure)", len(ring.Points))
	}
	if ring.Truncated {
		t.Error("ring should not be Truncated")
	}
	if !ring.Points[0].Equal(ring.Points[len(ring.Points)-1]) {
		t.Error("ring does not close back to its first point")
	}
}

func TestResolveAreaSquare(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(0, 0))
	n2 := newNode(st, 2, point(4, 0))
	n3 := newNode(st, 3, point(4, 4))
	n4 := newNode(st, 4, point(0, 4))
	e1 := newEdge(st, 11, n1, n2)
	e2 := newEdge(st, 12, n2, n3)
	e3 := newEdge(st, 13, n3, n4)
	e4 := newEdge(st, 14, n4, n1)

	feature := store.NewName(store.RCNMFeature, 200)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveArea})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageExterior), fwd(e2, store.UsageExterior),
		fwd(e3, store.UsageExterior), fwd(e4, store.UsageExterior),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(geom.Rings) != 1 || len(geom.Rings[0].Points) != 5 {
		t.Fatalf("got rings %+v, want one 5-point closed ring", geom.Rings)
	}
}

// TestResolveAreaExteriorTruncated covers spec §4.5 point 6 / §8's closure
// invariant exception: a ring built from an edge whose USAG is
// ExteriorTruncated is accepted without requiring its first and last points
// to coincide, and is reported back as Truncated.
func TestResolveAreaExteriorTruncated(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(0, 0))
	n2 := newNode(st, 2, point(4, 0))
	e1 := newEdge(st, 11, n1, n2)

	feature := store.NewName(store.RCNMFeature, 150)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveArea})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageTruncated),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(geom.Rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(geom.Rings))
	}
	ring := geom.Rings[0]
	if !ring.Truncated {
		t.Error("ring should be Truncated")
	}
	if ring.Points[0].Equal(ring.Points[len(ring.Points)-1]) {
		t.Error("ring happens to close, test should use a genuinely open boundary")
	}
}

func TestResolveLineChain(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(0, 0))
	n2 := newNode(st, 2, point(1, 1))
	n3 := newNode(st, 3, point(2, 2))
	e1 := newEdge(st, 11, n1, n2)
	e2 := newEdge(st, 12, n2, n3)

	feature := store.NewName(store.RCNMFeature, 300)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveLine})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageNull), fwd(e2, store.UsageNull),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Kind != GeometryLine || len(geom.Lines) != 1 || len(geom.Lines[0]) != 3 {
		t.Fatalf("got %+v, want a single 3-point line", geom)
	}
}

func TestResolveLineReversedSecondEdge(t *testing.T) {
	st := store.New()
	a := newNode(st, 1, point(0, 0))
	b := newNode(st, 2, point(1, 1))
	c := newNode(st, 3, point(2, 2))
	p, q := point(0, 1), point(1, 0)
	e1 := newEdge(st, 11, a, b)
	st.SetPositions(e1, store.ExactPositions{Points: []coord.Point{p, q}})
	e2 := newEdge(st, 12, b, c)

	feature := store.NewName(store.RCNMFeature, 350)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveLine})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageNull), rev(e2, store.UsageNull),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Kind != GeometryLine || len(geom.Lines) != 1 {
		t.Fatalf("got %+v, want a single line", geom)
	}
	want := []coord.Point{point(0, 0), p, q, point(1, 1), point(2, 2)}
	got := geom.Lines[0]
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("point %d = %+v, want %+v (full: %+v)", i, got[i], want[i], got)
		}
	}
}

func TestResolveMissingEdgeIsDanglingReference(t *testing.T) {
	st := store.New()
	feature := store.NewName(store.RCNMFeature, 400)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveLine})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(store.NewName(store.RCNMEdge, 999), store.UsageNull),
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	_, _, err := w.Resolve(feature)
	if !encerr.Is(err, encerr.DanglingReference) {
		t.Fatalf("got %v, want a DanglingReference error", err)
	}
}

func TestResolvePointFeature(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(5, 6))
	feature := store.NewName(store.RCNMFeature, 500)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitivePoint})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		{Target: n1, Orientation: store.OrientationNull, Usage: store.UsageNull},
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	geom, _, err := w.Resolve(feature)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Kind != GeometryPoint || !geom.Point.Equal(point(5, 6)) {
		t.Fatalf("got %+v, want point (5,6)", geom)
	}
}

func TestCyclePolicyRejectsRevisitedEdge(t *testing.T) {
	st := store.New()
	n1 := newNode(st, 1, point(0, 0))
	n2 := newNode(st, 2, point(1, 0))
	e1 := newEdge(st, 11, n1, n2)

	feature := store.NewName(store.RCNMFeature, 600)
	st.CreateFeature(store.FeatureMeta{Name: feature, Primitive: store.PrimitiveLine})
	st.SetFeaturePointers(feature, store.FeaturePointers{Pointers: []store.FeaturePointer{
		fwd(e1, store.UsageNull),
		{Target: e1, Orientation: store.OrientationReverse, Usage: store.UsageNull},
	}})

	w := NewEdgeWalker(st, CycleErrorPolicy(), ContinuityError)
	if _, _, err := w.Resolve(feature); !encerr.Is(err, encerr.TopologyError) {
		t.Fatalf("got %v, want a TopologyError from CycleErrorPolicy", err)
	}

	w2 := NewEdgeWalker(st, CycleAllowOncePolicy(), ContinuityError)
	if _, _, err := w2.Resolve(feature); err != nil {
		t.Fatalf("CycleAllowOncePolicy should tolerate one revisit, got %v", err)
	}
}
