// Package coord provides exact rational coordinate arithmetic. Chart
// coordinates arrive as COMF/SOMF-scaled integers and must compose (ring
// accumulation, closure checks) without the rounding a float64 would
// introduce — two rings built from the same edges in a different walk order
// must compare bit-for-bit equal.
package coord

import "math/big"

// Rational is an exact fraction kept deliberately unreduced: Num/Den is
// never run through GCD reduction, because reduction is itself a source of
// divergence between two arithmetically-equal values built by different
// paths (e.g. a ring closed by walking edges forward vs. backward). Equality
// is decided by cross-multiplication, never by comparing reduced forms.
type Rational struct {
	Num *big.Int
	Den *big.Int
}

// FromScaled builds the Rational raw/scale represents, e.g. a coordinate
// ordinate value divided by its dataset's COMF (coordinate multiplication
// factor). scale must be positive.
func FromScaled(raw int64, scale int64) Rational {
	return Rational{Num: big.NewInt(raw), Den: big.NewInt(scale)}
}

// FromInt builds the exact integer n.
func FromInt(n int64) Rational {
	return Rational{Num: big.NewInt(n), Den: big.NewInt(1)}
}

// Zero is the additive identity.
func Zero() Rational { return FromInt(0) }

// Add returns a + b, unreduced: (a.Num*b.Den + b.Num*a.Den) / (a.Den*b.Den).
func (a Rational) Add(b Rational) Rational {
	num := new(big.Int).Add(
		new(big.Int).Mul(a.Num, b.Den),
		new(big.Int).Mul(b.Num, a.Den),
	)
	den := new(big.Int).Mul(a.Den, b.Den)
	return Rational{Num: num, Den: den}
}

// Sub returns a - b, unreduced.
func (a Rational) Sub(b Rational) Rational {
	neg := Rational{Num: new(big.Int).Neg(b.Num), Den: b.Den}
	return a.Add(neg)
}

// Mul returns a * b, unreduced.
func (a Rational) Mul(b Rational) Rational {
	return Rational{
		Num: new(big.Int).Mul(a.Num, b.Num),
		Den: new(big.Int).Mul(a.Den, b.Den),
	}
}

// Equal reports whether a and b represent the same value via
// cross-multiplication (a.Num*b.Den == b.Num*a.Den), never by comparing
// reduced forms — the two sides may carry different, unreduced denominators
// and still be exactly equal.
func (a Rational) Equal(b Rational) bool {
	lhs := new(big.Int).Mul(a.Num, b.Den)
	rhs := new(big.Int).Mul(b.Num, a.Den)
	return lhs.Cmp(rhs) == 0
}

// Sign returns -1, 0, or 1 per the sign of the value (Den is always kept
// positive by construction in this package, so this is just Num's sign
// adjusted for Den's).
func (a Rational) Sign() int {
	return a.Num.Sign() * a.Den.Sign()
}

// Float64 returns the nearest float64, for rendering and for callers (e.g.
// the spatial index) that only need approximate bounds.
func (a Rational) Float64() float64 {
	f := new(big.Rat).SetFrac(a.Num, a.Den)
	v, _ := f.Float64()
	return v
}

// String renders a fixed-precision decimal approximation (15 digits after
// the decimal point), suitable for diagnostics — never used for equality.
func (a Rational) String() string {
	f := new(big.Rat).SetFrac(a.Num, a.Den)
	return f.FloatString(15)
}

// Point is an exact 2D or 3D coordinate. Z is nil for 2D geometry.
type Point struct {
	X, Y Rational
	Z    *Rational
}

// Equal reports whether two points are exactly equal in every present
// ordinate. Points with differing Z-presence are never equal.
func (p Point) Equal(o Point) bool {
	if !p.X.Equal(o.X) || !p.Y.Equal(o.Y) {
		return false
	}
	if (p.Z == nil) != (o.Z == nil) {
		return false
	}
	if p.Z != nil && !p.Z.Equal(*o.Z) {
		return false
	}
	return true
}
