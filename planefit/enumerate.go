package planefit

import (
	"math"

	"github.com/golang/geo/r3"
)

// planeFromTriple builds the plane through a, b and c. The normal is the normalized cross
// product of (b-a) and (c-a); ok is false when its squared magnitude is at most eps,
// i.e. the points are collinear or coincident, or when it is not finite because a
// coordinate is NaN or infinite.
func planeFromTriple(a, b, c r3.Vector, eps float64) (Plane, bool) {
	cross := b.Sub(a).Cross(c.Sub(a))
	norm2 := cross.Norm2()
	if !(norm2 > eps) || math.IsInf(norm2, 1) {
		return Plane{}, false
	}
	return Plane{
		Origin: a,
		Normal: cross.Mul(1.0 / math.Sqrt(norm2)),
	}, true
}

// EnumeratePlanes returns the plane through every non-degenerate triple of points.
// Each unordered triple i<j<k is visited once, in lexicographic index order, and the
// emitted plane is anchored at points[i].
//
// The search is O(n³) in the number of points and SelectMedianPlane is quadratic in its
// output, so the pipeline is only meant for clouds of tens of points.
func EnumeratePlanes(points []r3.Vector, eps float64) []Plane {
	n := len(points)
	if n < 3 {
		return nil
	}

	planes := make([]Plane, 0, n*(n-1)*(n-2)/6)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				if p, ok := planeFromTriple(points[i], points[j], points[k], eps); ok {
					planes = append(planes, p)
				}
			}
		}
	}
	return planes
}
