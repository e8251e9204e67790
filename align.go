package meshalign

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"github.com/biotinker/meshalign/planefit"
	"github.com/biotinker/meshalign/sampling"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/rdk/utils"
)

// Target is anything the aligner can orient to the ground beneath it.
type Target interface {
	Name() string
	// Bounds returns the world-frame axis-aligned bounding box.
	Bounds() (lo, hi r3.Vector)
	Pose() spatialmath.Pose
	SetPose(spatialmath.Pose)
}

// Config holds all configuration for ground alignment.
type Config struct {
	Estimator         planefit.Config     `mapstructure:"estimator"`
	Grid              sampling.GridConfig `mapstructure:"grid"`
	LargeCloudWarning int                 `mapstructure:"large_cloud_warning"` // Warn above this many samples; 0 = never
}

// DefaultConfig returns a Config with sensible defaults. Selected normals are flipped to
// face up so a target is never turned upside down by the winding of its samples.
func DefaultConfig() Config {
	est := planefit.DefaultConfig()
	est.FaceReferenceUp = true
	return Config{
		Estimator:         est,
		Grid:              sampling.DefaultGridConfig(),
		LargeCloudWarning: 64,
	}
}

// Report records what the aligner did to one target.
type Report struct {
	RunID    string
	Target   string
	Samples  []r3.Vector
	Estimate planefit.Estimate
	Pose     spatialmath.Pose
}

// Aligner samples the ground under each target and rotates the target onto it.
type Aligner struct {
	logger    logging.Logger
	raycaster sampling.Raycaster
	estimator *planefit.Estimator
	cfg       Config
}

// NewAligner creates a new Aligner with the given configuration.
func NewAligner(rc sampling.Raycaster, logger logging.Logger, cfg *Config) (*Aligner, error) {
	if rc == nil {
		return nil, errors.New("raycaster is nil")
	}
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	return &Aligner{
		logger:    logger,
		raycaster: rc,
		estimator: planefit.NewEstimator(&cfg.Estimator),
		cfg:       *cfg,
	}, nil
}

// AlignAll aligns every target in order. Nil targets are skipped. A raycast failure
// aborts the run; the reports for targets already aligned are returned with the error.
func (a *Aligner) AlignAll(ctx context.Context, targets []Target) ([]Report, error) {
	runID := uuid.NewString()
	a.logger.Infof("Alignment run %s: %d targets", runID, len(targets))

	reports := make([]Report, 0, len(targets))
	for i, target := range targets {
		if target == nil {
			a.logger.Warnf("Skipping nil target at index %d", i)
			continue
		}
		report, err := a.align(ctx, runID, target)
		if err != nil {
			return reports, fmt.Errorf("target %q: %w", target.Name(), err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// AlignTarget aligns a single target.
func (a *Aligner) AlignTarget(ctx context.Context, target Target) (Report, error) {
	if target == nil {
		return Report{}, errors.New("target is nil")
	}
	return a.align(ctx, uuid.NewString(), target)
}

func (a *Aligner) align(ctx context.Context, runID string, target Target) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	lo, hi := target.Bounds()
	samples, err := sampling.SampleGrid(ctx, a.raycaster, lo, hi, a.cfg.Grid)
	if err != nil {
		return Report{}, fmt.Errorf("sampling ground: %w", err)
	}
	a.logger.Debugf("%s: %d ground samples under [(%.3f, %.3f, %.3f), (%.3f, %.3f, %.3f)]",
		target.Name(), len(samples), lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	if a.cfg.LargeCloudWarning > 0 && len(samples) > a.cfg.LargeCloudWarning {
		a.logger.Warnf("%s: %d samples exceeds %d; plane search is O(n^6), consider a larger grid step",
			target.Name(), len(samples), a.cfg.LargeCloudWarning)
	}

	est := a.estimator.EstimateGroundRotation(samples)
	switch est.Condition {
	case planefit.Ok:
		a.logger.Infof("%s: %d candidate planes, normal=(%.3f, %.3f, %.3f) rotation=%.2f° about (%.3f, %.3f, %.3f)",
			target.Name(), est.Candidates, est.Normal.X, est.Normal.Y, est.Normal.Z,
			utils.RadToDeg(est.Rotation.Angle), est.Rotation.Axis.X, est.Rotation.Axis.Y, est.Rotation.Axis.Z)
	case planefit.DegenerateNormalAlignment:
		a.logger.Infof("%s: normal parallel to reference up, rotation=%.0f°", target.Name(), utils.RadToDeg(est.Rotation.Angle))
	default:
		a.logger.Warnf("%s: %v (%d samples); leaving orientation unrotated", target.Name(), est.Condition.Err(), len(samples))
	}

	var origin r3.Vector
	if current := target.Pose(); current != nil {
		origin = current.Point()
	}
	pose := spatialmath.NewPose(origin, est.Rotation.Orientation())
	target.SetPose(pose)

	return Report{
		RunID:    runID,
		Target:   target.Name(),
		Samples:  samples,
		Estimate: est,
		Pose:     pose,
	}, nil
}
