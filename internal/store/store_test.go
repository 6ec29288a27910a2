package store

import (
	"testing"

	"github.com/vesseltrace/enc57/internal/coord"
)

func TestStoreVectorRoundTrip(t *testing.T) {
	s := New()
	n := NewName(RCNMEdge, 42)
	s.CreateVector(VectorMeta{Name: n, Kind: KindEdge, RecordVersion: 1})

	got, ok := s.Vector(n)
	if !ok {
		t.Fatal("vector not found after CreateVector")
	}
	if got.Kind != KindEdge {
		t.Errorf("Kind = %v, want KindEdge", got.Kind)
	}

	s.SetPositions(n, ExactPositions{Points: []coord.Point{{X: coord.FromInt(1), Y: coord.FromInt(2)}}})
	pos, ok := s.Positions(n)
	if !ok || len(pos.Points) != 1 {
		t.Fatalf("Positions = %+v, %v", pos, ok)
	}
}

func TestStoreIterFeaturesDeterministicOrder(t *testing.T) {
	s := New()
	for _, rcid := range []uint32{30, 10, 20} {
		s.CreateFeature(FeatureMeta{Name: NewName(RCNMFeature, rcid), Primitive: PrimitivePoint})
	}

	names := s.IterFeatures(nil)
	if len(names) != 3 {
		t.Fatalf("got %d features, want 3", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1].RCID >= names[i].RCID {
			t.Errorf("IterFeatures not sorted ascending by RCID: %v", names)
		}
	}
}

func TestStoreIterFeaturesFilter(t *testing.T) {
	s := New()
	s.CreateFeature(FeatureMeta{Name: NewName(RCNMFeature, 1), Primitive: PrimitivePoint})
	s.CreateFeature(FeatureMeta{Name: NewName(RCNMFeature, 2), Primitive: PrimitiveArea})

	areas := s.IterFeatures(func(m FeatureMeta) bool { return m.Primitive == PrimitiveArea })
	if len(areas) != 1 || areas[0].RCID != 2 {
		t.Errorf("got %v, want a single feature with RCID 2", areas)
	}
}

func TestNameZeroValue(t *testing.T) {
	var n Name
	if !n.IsZero() {
		t.Error("zero-value Name.IsZero() should be true")
	}
	if NewName(RCNMEdge, 1).IsZero() {
		t.Error("non-zero Name.IsZero() should be false")
	}
}
