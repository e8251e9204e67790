package planefit

import "github.com/golang/geo/r3"

// Config holds the tolerances used by the ground rotation estimator.
type Config struct {
	CollinearityEpsilon float64   `mapstructure:"collinearity_epsilon"` // Max squared cross-product magnitude for a triple to count as collinear
	ParallelTolerance   float64   `mapstructure:"parallel_tolerance"`   // Max |up x normal| (and min angle) treated as no rotation axis
	ReferenceUp         r3.Vector `mapstructure:"reference_up"`         // Axis mapped onto the plane normal
	FaceReferenceUp     bool      `mapstructure:"face_reference_up"`    // Flip the selected normal into the reference-up hemisphere
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CollinearityEpsilon: 1e-8,
		ParallelTolerance:   1e-9,
		ReferenceUp:         r3.Vector{X: 0, Y: 0, Z: 1},
		FaceReferenceUp:     false,
	}
}
