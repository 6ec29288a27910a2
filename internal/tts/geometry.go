package tts

import (
	"github.com/vesseltrace/enc57/internal/coord"
	"github.com/vesseltrace/enc57/internal/encerr"
)

// GeometryKind is which S-57 primitive a resolved Geometry represents, per
// spec.md §6.3's ResolvedGeometry sum: Point/Line/Area on success, None for
// a feature carrying no spatial primitive, Error when the walk itself
// failed (a dangling reference or a topology-policy violation).
type GeometryKind int

const (
	GeometryPoint GeometryKind = iota
	GeometryLine
	GeometryArea
	GeometryNone
	GeometryError
)

// Ring is one closed (or intentionally open) polyline of an Area's
// geometry: the exterior boundary or one interior hole. Truncated is set
// when the ring was built from an edge carrying USAG=ExteriorTruncated —
// the ring is left open at the data-coverage boundary by design, and its
// first/last points are not required to coincide.
type Ring struct {
	Points    []coord.Point
	Truncated bool
}

// Geometry is a feature's fully resolved geometry: the result of walking its
// FSPT spatial pointers out to exact coordinates. Only the field matching
// Kind is populated; GeometryError populates Err instead of any coordinate
// field, so a caller that reaches for .Point/.Lines/.Rings on a failed
// resolution gets the zero value rather than dereferencing an unset
// Rational.
//
// Line may hold more than one part when ContinuityGapMarker split a broken
// chain rather than failing it. Area's first ring is the exterior; any
// further rings are interior (holes) in the order encountered.
type Geometry struct {
	Kind  GeometryKind
	Point coord.Point
	Lines [][]coord.Point
	Rings []Ring
	Err   *encerr.Error
}

// ErrorGeometry wraps a resolution failure as a GeometryError Geometry, the
// value load.go stores for a feature whose spatial reference couldn't be
// resolved instead of leaving that feature absent from the map.
func ErrorGeometry(err error) Geometry {
	e, _ := err.(*encerr.Error)
	if e == nil {
		e = encerr.New(encerr.TopologyError, err.Error())
	}
	return Geometry{Kind: GeometryError, Err: e}
}

// NoneGeometry is the resolved geometry of a feature whose FRID carries no
// spatial primitive (PRIM=255, "None").
func NoneGeometry() Geometry { return Geometry{Kind: GeometryNone} }

// ringCloses reports whether a ring's last point exactly equals its first,
// using exact rational equality rather than a float tolerance — a ring
// assembled from the same edges by a different walk must close identically
// every time.
func ringCloses(points []coord.Point) bool {
	if len(points) < 2 {
		return false
	}
	return points[0].Equal(points[len(points)-1])
}
