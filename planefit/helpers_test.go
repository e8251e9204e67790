package planefit

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// planeBasis returns unit vectors u, v spanning the plane perpendicular to normal with
// u × v = normal.
func planeBasis(normal r3.Vector) (r3.Vector, r3.Vector) {
	n := normal.Normalize()
	u := perpendicularAxis(n)
	v := n.Cross(u)
	return u, v
}

// generateCirclePoints returns n points on a circle in the plane through center with the
// given normal, in counter-clockwise order about the normal. Every triple i<j<k of the
// result is wound the same way, so every enumerated normal points along +normal.
func generateCirclePoints(center, normal r3.Vector, radius float64, n int) []r3.Vector {
	u, v := planeBasis(normal)
	points := make([]r3.Vector, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		points[i] = center.Add(u.Mul(radius * math.Cos(theta))).Add(v.Mul(radius * math.Sin(theta)))
	}
	return points
}

// generateNoisyPlane samples n points uniformly in a square patch of the plane, with
// Gaussian noise of stddev noise along the normal.
func generateNoisyPlane(center, normal r3.Vector, halfSize float64, n int, noise float64, seed int64) []r3.Vector {
	//nolint:gosec
	rng := rand.New(rand.NewSource(seed))
	u, v := planeBasis(normal)
	n0 := normal.Normalize()
	points := make([]r3.Vector, n)
	for i := range points {
		a := (rng.Float64()*2 - 1) * halfSize
		b := (rng.Float64()*2 - 1) * halfSize
		points[i] = center.Add(u.Mul(a)).Add(v.Mul(b)).Add(n0.Mul(rng.NormFloat64() * noise))
	}
	return points
}

func vecNear(a, b r3.Vector, eps float64) bool {
	return a.Sub(b).Norm() <= eps
}

// axisAngleDeg returns the angle between two directions in degrees, ignoring sign.
func axisAngleDeg(a, b r3.Vector) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	return math.Acos(clamp(d, -1, 1)) * 180 / math.Pi
}

// generateJitteredRing returns n points around a ring in the plane through center, with
// deterministic angular, radial and out-of-plane jitter. The jitter is small enough that
// the points stay in convex position, so every triple winds counter-clockwise about normal.
func generateJitteredRing(center, normal r3.Vector, radius float64, n int, noise float64) []r3.Vector {
	u, v := planeBasis(normal)
	n0 := normal.Normalize()
	points := make([]r3.Vector, n)
	for i := range points {
		fi := float64(i)
		theta := 2 * math.Pi * (fi + 0.2*math.Sin(1.7*fi)) / float64(n)
		r := radius * (1 + 0.04*math.Sin(2.3*fi))
		h := noise * math.Sin(3.1*fi+0.5)
		points[i] = center.Add(u.Mul(r * math.Cos(theta))).Add(v.Mul(r * math.Sin(theta))).Add(n0.Mul(h))
	}
	return points
}
