package planefit

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// These helpers are not used by EstimateGroundRotation. They are kept as standalone
// utilities for callers that want to pre-filter a cloud or compare against a cheaper fit.

// Centroid returns the mean of points.
func Centroid(points []r3.Vector) (r3.Vector, error) {
	if len(points) == 0 {
		return r3.Vector{}, ErrTooFewPoints
	}
	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points))), nil
}

// RemoveOutliers returns the points within threshold of centroid, in their original order.
// The input slice is not modified.
func RemoveOutliers(points []r3.Vector, centroid r3.Vector, threshold float64) []r3.Vector {
	threshSq := threshold * threshold
	kept := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		if p.Sub(centroid).Norm2() <= threshSq {
			kept = append(kept, p)
		}
	}
	return kept
}

// FitPlaneCovariance fits a plane through the centroid of points using a row-sum
// heuristic on the scatter matrix (seeded with the identity): the row with the smallest
// sum is taken as the normal. This approximates the smallest-eigenvalue direction only
// for clouds whose spread is roughly axis-aligned; it is not PCA.
func FitPlaneCovariance(points []r3.Vector) (Plane, error) {
	if len(points) < 3 {
		return Plane{}, ErrTooFewPoints
	}
	centroid, err := Centroid(points)
	if err != nil {
		return Plane{}, err
	}

	cov := mat.NewSymDense(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	rel := mat.NewVecDense(3, nil)
	for _, p := range points {
		d := p.Sub(centroid)
		rel.SetVec(0, d.X)
		rel.SetVec(1, d.Y)
		rel.SetVec(2, d.Z)
		cov.SymRankOne(cov, 1, rel)
	}

	var normal r3.Vector
	minRowSum := 0.0
	for i := 0; i < 3; i++ {
		row := mat.Row(nil, i, cov)
		sum := floats.Sum(row)
		if i == 0 || sum < minRowSum {
			minRowSum = sum
			normal = r3.Vector{X: row[0], Y: row[1], Z: row[2]}
		}
	}

	norm := normal.Norm()
	if norm < 1e-12 {
		return Plane{}, ErrDegenerateFit
	}
	return Plane{Origin: centroid, Normal: normal.Mul(1.0 / norm)}, nil
}
