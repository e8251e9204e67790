package planefit

import (
	"math"

	"github.com/golang/geo/r3"
)

// angleBetween returns the angle between two unit vectors. The dot product is clamped to
// [-1, 1] first; rounding can push it just outside and acos would return NaN.
func angleBetween(a, b r3.Vector) float64 {
	return math.Acos(clamp(a.Dot(b), -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// angularDeviation sums the angle between planes[i]'s normal and every other normal.
func angularDeviation(planes []Plane, i int) float64 {
	var sum float64
	for j := range planes {
		if j == i {
			continue
		}
		sum += angleBetween(planes[i].Normal, planes[j].Normal)
	}
	return sum
}

// SelectMedianPlane returns the candidate whose normal has the smallest total angle to
// all other candidate normals, together with its index. Ties go to the earliest
// candidate. The cost is quadratic in len(planes).
func SelectMedianPlane(planes []Plane) (Plane, int, error) {
	if len(planes) == 0 {
		return Plane{}, -1, ErrEmptyPlaneSet
	}

	best := 0
	bestSum := angularDeviation(planes, 0)
	for i := 1; i < len(planes); i++ {
		sum := angularDeviation(planes, i)
		if sum < bestSum {
			bestSum = sum
			best = i
		}
	}
	return planes[best], best, nil
}
