package planefit

import (
	"math"

	"github.com/golang/geo/r3"
)

// RotationFromNormal returns the minimal rotation taking up onto normal. Both vectors
// must be unit length.
//
// When |up × normal| <= tol there is no usable axis: a same-direction normal gives the
// identity and an opposite one gives a half turn about an axis perpendicular to up. Both
// cases report DegenerateNormalAlignment.
func RotationFromNormal(up, normal r3.Vector, tol float64) (Rotation, Condition) {
	cross := up.Cross(normal)
	crossNorm := cross.Norm()
	if crossNorm <= tol {
		if up.Dot(normal) >= 0 {
			return IdentityRotation(), DegenerateNormalAlignment
		}
		return Rotation{Axis: perpendicularAxis(up), Angle: math.Pi}, DegenerateNormalAlignment
	}

	return Rotation{Axis: cross.Mul(1.0 / crossNorm), Angle: angleBetween(up, normal)}, Ok
}

// perpendicularAxis returns a unit vector perpendicular to the unit vector v, built from
// the basis axis least aligned with v. For v = +Z this is +X.
func perpendicularAxis(v r3.Vector) r3.Vector {
	var basis r3.Vector
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax <= ay && ax <= az:
		basis = r3.Vector{X: 1}
	case ay <= az:
		basis = r3.Vector{Y: 1}
	default:
		basis = r3.Vector{Z: 1}
	}
	return basis.Sub(v.Mul(basis.Dot(v))).Normalize()
}
