package planefit

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
)

// Estimator orients "up" to the dominant plane of a small point cloud.
// It holds only configuration and is safe for concurrent use.
type Estimator struct {
	cfg Config
	up  r3.Vector
}

// NewEstimator creates a new Estimator with the given configuration.
func NewEstimator(cfg *Config) *Estimator {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	up := cfg.ReferenceUp.Normalize()
	if up.Norm2() == 0 {
		up = r3.Vector{X: 0, Y: 0, Z: 1}
	}
	return &Estimator{cfg: *cfg, up: up}
}

// Config returns the estimator's configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// EstimateGroundRotation computes the rotation mapping reference up onto the normal of
// the median plane through points. It always returns a usable rotation; when no plane
// can be selected the rotation is the identity and Condition says why.
func (e *Estimator) EstimateGroundRotation(points []r3.Vector) Estimate {
	est := Estimate{
		Rotation:  IdentityRotation(),
		Condition: Ok,
		Points:    len(points),
	}
	if len(points) < 3 {
		est.Condition = InsufficientPoints
		return est
	}

	planes := EnumeratePlanes(points, e.cfg.CollinearityEpsilon)
	est.Candidates = len(planes)
	if len(planes) == 0 {
		est.Condition = NoValidPlane
		return est
	}

	best, _, err := SelectMedianPlane(planes)
	if err != nil {
		est.Condition = NoValidPlane
		return est
	}

	normal := best.Normal
	if e.cfg.FaceReferenceUp && normal.Dot(e.up) < 0 {
		normal = normal.Mul(-1)
	}

	est.Plane = best
	est.Normal = normal
	est.Rotation, est.Condition = RotationFromNormal(e.up, normal, e.cfg.ParallelTolerance)
	return est
}

// EstimateFromCloud runs EstimateGroundRotation on the points of cloud, in the cloud's
// iteration order.
func (e *Estimator) EstimateFromCloud(cloud pointcloud.PointCloud) (Estimate, error) {
	if cloud == nil {
		return Estimate{}, ErrNilPointCloud
	}
	return e.EstimateGroundRotation(pointcloud.CloudToPoints(cloud)), nil
}

var defaultEstimator = NewEstimator(nil)

// EstimateGroundRotation estimates with DefaultConfig.
func EstimateGroundRotation(points []r3.Vector) Estimate {
	return defaultEstimator.EstimateGroundRotation(points)
}
