package sampling

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// ErrInvalidGrid is returned when a GridConfig cannot describe a sampling grid.
var ErrInvalidGrid = errors.New("invalid sampling grid")

// Raycaster answers segment queries against a scene.
type Raycaster interface {
	// Raycast returns the first hit along the segment from start to end, if any.
	Raycast(ctx context.Context, start, end r3.Vector) (hit r3.Vector, ok bool, err error)
}

// GridConfig holds parameters for sampling the ground beneath a bounding box.
type GridConfig struct {
	StepSize   float64 `mapstructure:"step_size"`   // Spacing between rays in X and Y
	TraceDepth float64 `mapstructure:"trace_depth"` // Length of each downward ray
}

// DefaultGridConfig returns a GridConfig with sensible defaults.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		StepSize:   50.0,
		TraceDepth: 1000.0,
	}
}

// Validate checks that the grid spacing and depth are positive.
func (c GridConfig) Validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("%w: step size %v must be positive", ErrInvalidGrid, c.StepSize)
	}
	if c.TraceDepth <= 0 {
		return fmt.Errorf("%w: trace depth %v must be positive", ErrInvalidGrid, c.TraceDepth)
	}
	return nil
}

// SampleGrid casts vertical rays downward from the bottom face of the box [lo, hi]
// and returns the hit points. Rays start at x = lo.X + i*StepSize for every x < hi.X,
// likewise for y, with x in the outer loop. Each ray runs from z = lo.Z down by
// TraceDepth. Rays that hit nothing are skipped.
func SampleGrid(ctx context.Context, rc Raycaster, lo, hi r3.Vector, cfg GridConfig) ([]r3.Vector, error) {
	if rc == nil {
		return nil, errors.New("raycaster is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var hits []r3.Vector
	for i := 0; ; i++ {
		x := lo.X + float64(i)*cfg.StepSize
		if x >= hi.X {
			break
		}
		for j := 0; ; j++ {
			y := lo.Y + float64(j)*cfg.StepSize
			if y >= hi.Y {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			start := r3.Vector{X: x, Y: y, Z: lo.Z}
			end := r3.Vector{X: x, Y: y, Z: lo.Z - cfg.TraceDepth}
			hit, ok, err := rc.Raycast(ctx, start, end)
			if err != nil {
				return nil, fmt.Errorf("raycast at (%.3f, %.3f): %w", x, y, err)
			}
			if ok {
				hits = append(hits, hit)
			}
		}
	}
	return hits, nil
}
