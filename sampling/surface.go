package sampling

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/spatialmath"
)

// rayEpsilon bounds the determinant below which a segment is treated as parallel to a
// triangle, and the barycentric slack that keeps rays through shared edges from slipping
// between neighbouring triangles.
const rayEpsilon = 1e-9

// TriangleSurface is a static triangle soup that answers Raycast queries.
type TriangleSurface struct {
	triangles []*spatialmath.Triangle
	lower, upper r3.Vector
}

// NewTriangleSurface wraps the given triangles.
func NewTriangleSurface(triangles []*spatialmath.Triangle) *TriangleSurface {
	s := &TriangleSurface{triangles: triangles}
	s.lower, s.upper = computeTrianglesAABB(triangles)
	return s
}

// NewHeightSurface triangulates z = height(x, y) over the XY rectangle spanned by lower and
// upper using square cells of the given size (the last row and column may be narrower).
func NewHeightSurface(height func(x, y float64) float64, lower, upper r3.Vector, cell float64) (*TriangleSurface, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("%w: cell size %v must be positive", ErrInvalidGrid, cell)
	}
	if upper.X <= lower.X || upper.Y <= lower.Y {
		return nil, fmt.Errorf("%w: empty surface extent %v to %v", ErrInvalidGrid, lower, upper)
	}

	xs := gridCoords(lower.X, upper.X, cell)
	ys := gridCoords(lower.Y, upper.Y, cell)
	vertex := func(i, j int) r3.Vector {
		return r3.Vector{X: xs[i], Y: ys[j], Z: height(xs[i], ys[j])}
	}

	triangles := make([]*spatialmath.Triangle, 0, 2*(len(xs)-1)*(len(ys)-1))
	for i := 0; i < len(xs)-1; i++ {
		for j := 0; j < len(ys)-1; j++ {
			p00, p10, p01, p11 := vertex(i, j), vertex(i+1, j), vertex(i, j+1), vertex(i+1, j+1)
			triangles = append(triangles,
				spatialmath.NewTriangle(p00, p10, p11),
				spatialmath.NewTriangle(p00, p11, p01),
			)
		}
	}
	return NewTriangleSurface(triangles), nil
}

func gridCoords(lo, hi, step float64) []float64 {
	n := int(math.Ceil((hi - lo) / step))
	coords := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		coords = append(coords, lo+float64(i)*step)
	}
	return append(coords, hi)
}

// Len returns the number of triangles in the surface.
func (s *TriangleSurface) Len() int {
	return len(s.triangles)
}

// Raycast returns the hit nearest to start along the segment from start to end.
func (s *TriangleSurface) Raycast(_ context.Context, start, end r3.Vector) (r3.Vector, bool, error) {
	if len(s.triangles) == 0 || !segmentOverlapsAABB(start, end, s.lower, s.upper) {
		return r3.Vector{}, false, nil
	}

	dir := end.Sub(start)
	bestT := math.Inf(1)
	for _, tri := range s.triangles {
		if t, ok := intersectSegmentTriangle(start, dir, tri.Points()); ok && t < bestT {
			bestT = t
		}
	}
	if math.IsInf(bestT, 1) {
		return r3.Vector{}, false, nil
	}
	return start.Add(dir.Mul(bestT)), true, nil
}

// intersectSegmentTriangle runs the Möller–Trumbore test for the segment start + t*dir,
// t in [0, 1], and returns t at the hit.
func intersectSegmentTriangle(start, dir r3.Vector, pts []r3.Vector) (float64, bool) {
	e1 := pts[1].Sub(pts[0])
	e2 := pts[2].Sub(pts[0])
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := start.Sub(pts[0])
	u := inv * s.Dot(h)
	if u < -rayEpsilon || u > 1+rayEpsilon {
		return 0, false
	}
	q := s.Cross(e1)
	v := inv * dir.Dot(q)
	if v < -rayEpsilon || u+v > 1+rayEpsilon {
		return 0, false
	}
	t := inv * e2.Dot(q)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// computeTrianglesAABB computes the AABB encompassing all given triangles.
func computeTrianglesAABB(triangles []*spatialmath.Triangle) (lower, upper r3.Vector) {
	if len(triangles) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	lower = r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	upper = r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, tri := range triangles {
		for _, pt := range tri.Points() {
			lower = r3.Vector{X: math.Min(lower.X, pt.X), Y: math.Min(lower.Y, pt.Y), Z: math.Min(lower.Z, pt.Z)}
			upper = r3.Vector{X: math.Max(upper.X, pt.X), Y: math.Max(upper.Y, pt.Y), Z: math.Max(upper.Z, pt.Z)}
		}
	}
	return lower, upper
}

// segmentOverlapsAABB rejects segments whose own bounding box misses the surface's.
func segmentOverlapsAABB(start, end, lower, upper r3.Vector) bool {
	lo := r3.Vector{X: math.Min(start.X, end.X), Y: math.Min(start.Y, end.Y), Z: math.Min(start.Z, end.Z)}
	hi := r3.Vector{X: math.Max(start.X, end.X), Y: math.Max(start.Y, end.Y), Z: math.Max(start.Z, end.Z)}
	return lo.X <= upper.X+rayEpsilon && hi.X >= lower.X-rayEpsilon &&
		lo.Y <= upper.Y+rayEpsilon && hi.Y >= lower.Y-rayEpsilon &&
		lo.Z <= upper.Z+rayEpsilon && hi.Z >= lower.Z-rayEpsilon
}
