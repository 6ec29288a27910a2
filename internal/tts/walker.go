// Package tts resolves a feature's FSPT spatial pointers into concrete
// geometry by walking the underlying vector topology graph. It is a
// policy-driven walker that handles multi-ring areas (exterior plus holes),
// configurable tolerance for revisited edges and discontinuous chains, and
// exact rational closure checks instead of float comparisons.
package tts

import (
	"github.com/vesseltrace/enc57/internal/coord"
	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/store"
)

// EdgeWalker resolves feature geometry against a populated store.Store. It
// holds no mutable state of its own between calls to Resolve; the cycle and
// continuity policies are fixed at construction.
type EdgeWalker struct {
	store      *store.Store
	cycle      CyclePolicy
	continuity ContinuityPolicy
}

// NewEdgeWalker builds a walker over st using the given policies.
func NewEdgeWalker(st *store.Store, cycle CyclePolicy, continuity ContinuityPolicy) *EdgeWalker {
	return &EdgeWalker{store: st, cycle: cycle, continuity: continuity}
}

// Resolve walks featureName's spatial pointers and returns its geometry,
// dispatching on the feature's PRIM.
func (w *EdgeWalker) Resolve(featureName store.Name) (Geometry, []encerr.Diagnostic, error) {
	meta, ok := w.store.Feature(featureName)
	if !ok {
		return Geometry{}, nil, encerr.ForName(encerr.DanglingReference, "feature not found", featureName.String())
	}
	if meta.Primitive == store.PrimitiveNone {
		return NoneGeometry(), nil, nil
	}

	pointers, ok := w.store.FeaturePointersOf(featureName)
	if !ok || len(pointers.Pointers) == 0 {
		return Geometry{}, nil, encerr.ForFeature(encerr.DanglingReference,
			"feature has no spatial pointers", int64(featureName.RCID), featureName.String())
	}

	switch meta.Primitive {
	case store.PrimitivePoint:
		return w.resolvePoint(pointers.Pointers)
	case store.PrimitiveLine:
		return w.resolveLine(pointers.Pointers)
	case store.PrimitiveArea:
		return w.resolveArea(pointers.Pointers)
	default:
		return Geometry{}, nil, encerr.ForFeature(encerr.TopologyError,
			"feature carries an unrecognized geometry primitive", int64(featureName.RCID), featureName.String())
	}
}

func (w *EdgeWalker) resolvePoint(pointers []store.FeaturePointer) (Geometry, []encerr.Diagnostic, error) {
	var diags []encerr.Diagnostic
	if len(pointers) > 1 {
		diags = append(diags, encerr.Diagnostic{
			Kind: encerr.TopologyError, Message: "point feature has more than one spatial pointer, using the first",
		})
	}
	nodeName := pointers[0].Target
	pos, ok := w.store.Positions(nodeName)
	if !ok || len(pos.Points) == 0 {
		return Geometry{}, diags, encerr.ForName(encerr.DanglingReference, "point node has no position", nodeName.String())
	}
	return Geometry{Kind: GeometryPoint, Point: pos.Points[0]}, diags, nil
}

func (w *EdgeWalker) resolveLine(pointers []store.FeaturePointer) (Geometry, []encerr.Diagnostic, error) {
	var diags []encerr.Diagnostic
	visits := make(map[store.Name]int)
	var chains [][]coord.Point
	var current []coord.Point

	for _, ptr := range pointers {
		edgeName := ptr.Target
		visits[edgeName]++
		if !w.cycle.allows(visits[edgeName]) {
			return Geometry{}, diags, encerr.ForName(encerr.TopologyError, "edge revisited beyond cycle policy", edgeName.String())
		}

		pts, d, err := w.orientedEdgePoints(ptr)
		diags = append(diags, d...)
		if err != nil {
			return Geometry{}, diags, err
		}

		if current == nil {
			current = pts
			continue
		}
		if current[len(current)-1].Equal(pts[0]) {
			current = append(current, pts[1:]...)
			continue
		}
		if flipped := reversedPoints(pts); current[len(current)-1].Equal(flipped[0]) {
			diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
				Message: "edge orientation doesn't continue the chain, using the opposite direction", Name: edgeName.String()})
			current = append(current, flipped[1:]...)
			continue
		}
		if w.continuity == ContinuityGapMarker {
			diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError, Message: "line gap, starting new segment", Name: edgeName.String()})
			chains = append(chains, current)
			current = pts
			continue
		}
		return Geometry{}, diags, encerr.ForName(encerr.TopologyError, "discontinuous line", edgeName.String())
	}
	if current != nil {
		chains = append(chains, current)
	}
	if len(chains) == 0 {
		return Geometry{}, diags, encerr.New(encerr.TopologyError, "line feature produced no geometry")
	}
	return Geometry{Kind: GeometryLine, Lines: chains}, diags, nil
}

// ringPhase tracks where resolveArea is in the exterior-then-interiors
// sequence an Area feature's FSPT pointers are required to follow.
type ringPhase int

const (
	phaseEmpty ringPhase = iota
	phaseInExterior
	phaseInInterior
	phaseClosed
)

func (w *EdgeWalker) resolveArea(pointers []store.FeaturePointer) (Geometry, []encerr.Diagnostic, error) {
	var diags []encerr.Diagnostic
	visits := make(map[store.Name]int)
	var rings []Ring
	var current []coord.Point
	phase := phaseEmpty

	for _, ptr := range pointers {
		edgeName := ptr.Target
		visits[edgeName]++
		if !w.cycle.allows(visits[edgeName]) {
			return Geometry{}, diags, encerr.ForName(encerr.TopologyError, "edge revisited beyond cycle policy", edgeName.String())
		}

		pts, d, err := w.orientedEdgePoints(ptr)
		diags = append(diags, d...)
		if err != nil {
			return Geometry{}, diags, err
		}
		truncated := ptr.Usage == store.UsageTruncated

		if phase == phaseEmpty || phase == phaseClosed {
			if phase == phaseClosed {
				switch ptr.Usage {
				case store.UsageExterior, store.UsageTruncated:
					return Geometry{}, diags, encerr.ForName(encerr.TopologyError,
						"area feature has more than one exterior ring", edgeName.String())
				case store.UsageInterior:
					phase = phaseInInterior
				default:
					diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
						Message: "ambiguous ring usage after a closed ring, assuming interior", Name: edgeName.String()})
					phase = phaseInInterior
				}
			} else {
				if ptr.Usage != store.UsageExterior && ptr.Usage != store.UsageTruncated {
					diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
						Message: "area feature's first ring usage is not Exterior, assuming Exterior", Name: edgeName.String()})
				}
				phase = phaseInExterior
			}
			current = pts
		} else {
			if current[len(current)-1].Equal(pts[0]) {
				current = append(current, pts[1:]...)
			} else if flipped := reversedPoints(pts); current[len(current)-1].Equal(flipped[0]) {
				diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
					Message: "edge orientation doesn't continue the ring, using the opposite direction", Name: edgeName.String()})
				current = append(current, flipped[1:]...)
			} else if w.continuity == ContinuityGapMarker {
				diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
					Message: "ring gap, closing current ring early and starting a new one", Name: edgeName.String()})
				rings = append(rings, Ring{Points: current})
				current = pts
			} else {
				return Geometry{}, diags, encerr.ForName(encerr.TopologyError, "discontinuous ring", edgeName.String())
			}
		}

		// A ring carrying ExteriorTruncated is intentionally left open at
		// the data-coverage boundary (spec §4.5 point 6): it closes here
		// regardless of whether its first and last points coincide, and
		// the closure invariant in §8 is waived for it.
		if truncated {
			rings = append(rings, Ring{Points: current, Truncated: true})
			current = nil
			phase = phaseClosed
		} else if ringCloses(current) {
			rings = append(rings, Ring{Points: current})
			current = nil
			phase = phaseClosed
		}
	}

	if phase != phaseClosed {
		if w.continuity == ContinuityGapMarker {
			diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError, Message: "area feature ended with an unclosed ring"})
			if len(current) > 0 {
				rings = append(rings, Ring{Points: current})
			}
		} else {
			return Geometry{}, diags, encerr.New(encerr.TopologyError, "area feature ended with an unclosed ring")
		}
	}
	if len(rings) == 0 {
		return Geometry{}, diags, encerr.New(encerr.TopologyError, "area feature produced no rings")
	}
	return Geometry{Kind: GeometryArea, Rings: rings}, diags, nil
}

// orientedEdgePoints resolves one FSPT pointer's target edge to its full
// point sequence (bounding nodes plus interior vertices), applying the
// pointer's orientation. A Null orientation is treated as Forward, recorded
// as a Diagnostic rather than an error, per the decision that an unusual but
// not self-contradictory encoding shouldn't fail the whole feature.
func (w *EdgeWalker) orientedEdgePoints(ptr store.FeaturePointer) ([]coord.Point, []encerr.Diagnostic, error) {
	pts, diags, err := w.edgePoints(ptr.Target)
	if err != nil {
		return nil, diags, err
	}
	switch ptr.Orientation {
	case store.OrientationReverse:
		pts = reversedPoints(pts)
	case store.OrientationNull:
		diags = append(diags, encerr.Diagnostic{Kind: encerr.TopologyError,
			Message: "NULL orientation treated as Forward", Name: ptr.Target.String()})
	}
	return pts, diags, nil
}

// edgePoints returns edgeName's full coordinate sequence in its own
// canonical (Forward) direction: beginning node, interior vertices in
// on-disk order, end node.
func (w *EdgeWalker) edgePoints(edgeName store.Name) ([]coord.Point, []encerr.Diagnostic, error) {
	topo, ok := w.store.Topology(edgeName)
	if !ok {
		return nil, nil, encerr.ForName(encerr.DanglingReference, "edge has no topology", edgeName.String())
	}
	start, end, diags, err := w.edgeNodes(edgeName, topo)
	if err != nil {
		return nil, diags, err
	}

	startPt, err := w.nodePoint(start)
	if err != nil {
		return nil, diags, err
	}
	endPt, err := w.nodePoint(end)
	if err != nil {
		return nil, diags, err
	}

	interior, _ := w.store.Positions(edgeName)
	pts := make([]coord.Point, 0, 2+len(interior.Points))
	pts = append(pts, startPt)
	pts = append(pts, interior.Points...)
	pts = append(pts, endPt)
	return pts, diags, nil
}

// edgeNodes picks edgeName's beginning and end node out of its VRPT
// pointers by TOPI. If TOPI doesn't unambiguously mark one of each (missing,
// NULL, or duplicated — a malformed but not uncommon encoding), it falls
// back to on-disk pointer order (first is beginning, second is end) and
// records a Diagnostic, per the same "accept and flag, don't guess silently"
// decision applied to NULL orientation above.
func (w *EdgeWalker) edgeNodes(edgeName store.Name, topo store.VectorTopology) (store.Name, store.Name, []encerr.Diagnostic, error) {
	begin, hasBegin := topo.Node(store.TopiBeginningNode)
	end, hasEnd := topo.Node(store.TopiEndNode)
	if hasBegin && hasEnd {
		return begin.Target, end.Target, nil, nil
	}

	if len(topo.Pointers) < 2 {
		return store.Name{}, store.Name{}, nil, encerr.ForName(encerr.DanglingReference,
			"edge does not have two bounding nodes", edgeName.String())
	}
	diags := []encerr.Diagnostic{{Kind: encerr.TopologyError,
		Message: "edge TOPI does not unambiguously mark beginning/end node, using on-disk pointer order", Name: edgeName.String()}}
	return topo.Pointers[0].Target, topo.Pointers[1].Target, diags, nil
}

func (w *EdgeWalker) nodePoint(nodeName store.Name) (coord.Point, error) {
	pos, ok := w.store.Positions(nodeName)
	if !ok || len(pos.Points) == 0 {
		return coord.Point{}, encerr.ForName(encerr.DanglingReference, "node has no position", nodeName.String())
	}
	return pos.Points[0], nil
}

func reversedPoints(pts []coord.Point) []coord.Point {
	out := make([]coord.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
