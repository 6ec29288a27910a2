package store

import "github.com/vesseltrace/enc57/internal/coord"

// VectorKind is the RCNM of a vector record narrowed to the four kinds that
// carry geometry (110/120/130/140).
type VectorKind byte

const (
	KindIsolatedNode  VectorKind = 110
	KindConnectedNode VectorKind = 120
	KindEdge          VectorKind = 130
	KindFace          VectorKind = 140
)

func (k VectorKind) String() string {
	switch k {
	case KindIsolatedNode:
		return "IsolatedNode"
	case KindConnectedNode:
		return "ConnectedNode"
	case KindEdge:
		return "Edge"
	case KindFace:
		return "Face"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the four RCNM values spec.md §3.2
// defines for a vector record. A VRID outside this set is UnknownRecordKind
// per spec.md §7 and must be skipped, not ingested as an unrecognized kind.
func (k VectorKind) Valid() bool {
	switch k {
	case KindIsolatedNode, KindConnectedNode, KindEdge, KindFace:
		return true
	default:
		return false
	}
}

// Orientation is the ORNT subfield of a vector or feature pointer.
type Orientation byte

const (
	OrientationForward Orientation = 1
	OrientationReverse Orientation = 2
	OrientationNull    Orientation = 255
)

// UsageIndicator is the USAG subfield: whether a pointer's target is
// interior, exterior, or truncated relative to the referencing object.
type UsageIndicator byte

const (
	UsageExterior   UsageIndicator = 1
	UsageInterior   UsageIndicator = 2
	UsageTruncated  UsageIndicator = 3
	UsageNull       UsageIndicator = 255
)

// TopologyIndicator is the TOPI subfield, present only on VRPT (vector-to-
// vector) pointers: what role the referenced vector plays (beginning node,
// end node, left/right face, ...).
type TopologyIndicator byte

const (
	TopiBeginningNode TopologyIndicator = 1
	TopiEndNode       TopologyIndicator = 2
	TopiLeftFace      TopologyIndicator = 3
	TopiRightFace     TopologyIndicator = 4
	TopiContainingFace TopologyIndicator = 5
	TopiNull          TopologyIndicator = 255
)

// MaskIndicator is the MASK subfield: whether the pointer's target
// contributes to the drawn geometry.
type MaskIndicator byte

const (
	MaskVisible MaskIndicator = 1
	MaskInvisible MaskIndicator = 2
	MaskNull MaskIndicator = 255
)

// VectorPointer is one decoded VRPT entry: a vector record pointing at
// another vector record.
type VectorPointer struct {
	Target      Name
	Orientation Orientation
	Usage       UsageIndicator
	Topology    TopologyIndicator
	Mask        MaskIndicator
}

// VectorMeta is a vector record's identity and kind, decoded from its VRID
// field.
type VectorMeta struct {
	Name          Name
	Kind          VectorKind
	RecordVersion int32
}

// ExactPositions is a vector record's own coordinate geometry, decoded from
// its SG2D/SG3D field: a single point for a node, the ordered interior
// vertices (excluding the bounding nodes themselves) for an edge.
type ExactPositions struct {
	Points []coord.Point
}

// VectorTopology is a vector record's VRPT pointers: for an edge, exactly
// the two bounding nodes (by TOPI); isolated nodes and faces carry none or
// a face's bounding edges respectively.
type VectorTopology struct {
	Pointers []VectorPointer
}

// Node returns the pointer with the given topology role, if present.
func (t VectorTopology) Node(role TopologyIndicator) (VectorPointer, bool) {
	for _, p := range t.Pointers {
		if p.Topology == role {
			return p, true
		}
	}
	return VectorPointer{}, false
}
