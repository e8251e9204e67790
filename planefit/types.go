package planefit

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/spatialmath"
)

// Condition is the diagnostic attached to every estimate. No condition is fatal.
type Condition int

const (
	// Ok means the rotation came from a selected plane with a well-defined axis.
	Ok Condition = iota
	// InsufficientPoints means fewer than 3 points were supplied.
	InsufficientPoints
	// NoValidPlane means every point triple was degenerate.
	NoValidPlane
	// DegenerateNormalAlignment means the normal was parallel or antiparallel to reference up.
	DegenerateNormalAlignment
)

func (c Condition) String() string {
	switch c {
	case Ok:
		return "ok"
	case InsufficientPoints:
		return "insufficient_points"
	case NoValidPlane:
		return "no_valid_plane"
	case DegenerateNormalAlignment:
		return "degenerate_normal_alignment"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error for the condition, or nil for Ok.
func (c Condition) Err() error {
	switch c {
	case InsufficientPoints:
		return ErrInsufficientPoints
	case NoValidPlane:
		return ErrNoValidPlane
	case DegenerateNormalAlignment:
		return ErrDegenerateAlignment
	default:
		return nil
	}
}

// Plane is a point on the plane plus its unit normal.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
}

// Offset returns d such that Normal·x = d for every x on the plane.
func (p Plane) Offset() float64 {
	return p.Normal.Dot(p.Origin)
}

// Equation returns the plane as (nx, ny, nz, d) with n·x = d.
func (p Plane) Equation() [4]float64 {
	return [4]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.Offset()}
}

// Distance returns the signed distance from pt to the plane, positive on the normal side.
func (p Plane) Distance(pt r3.Vector) float64 {
	return p.Normal.Dot(pt) - p.Offset()
}

// PointcloudPlane converts to the rdk plane type, whose equation is ax + by + cz + w = 0.
func (p Plane) PointcloudPlane() pointcloud.Plane {
	return pointcloud.NewPlane(pointcloud.NewBasicEmpty(), [4]float64{
		p.Normal.X, p.Normal.Y, p.Normal.Z, -p.Offset(),
	})
}

// Rotation is an axis-angle rotation with a unit axis and an angle in radians.
type Rotation struct {
	Axis  r3.Vector
	Angle float64
}

// IdentityRotation returns the zero rotation about the Z axis.
func IdentityRotation() Rotation {
	return Rotation{Axis: r3.Vector{X: 0, Y: 0, Z: 1}, Angle: 0}
}

// IsIdentity reports whether the rotation leaves every vector unchanged.
func (r Rotation) IsIdentity() bool {
	return r.Angle == 0
}

// Quat returns the rotation as a unit quaternion.
func (r Rotation) Quat() quat.Number {
	s, c := math.Sincos(r.Angle / 2)
	return quat.Number{
		Real: c,
		Imag: s * r.Axis.X,
		Jmag: s * r.Axis.Y,
		Kmag: s * r.Axis.Z,
	}
}

// AxisAngle returns the rotation in rdk's R4AA form.
func (r Rotation) AxisAngle() *spatialmath.R4AA {
	return &spatialmath.R4AA{
		Theta: r.Angle,
		RX:    r.Axis.X,
		RY:    r.Axis.Y,
		RZ:    r.Axis.Z,
	}
}

// Orientation returns the rotation as an rdk orientation, for building poses.
func (r Rotation) Orientation() spatialmath.Orientation {
	q := spatialmath.Quaternion(r.Quat())
	return &q
}

// Apply rotates v.
func (r Rotation) Apply(v r3.Vector) r3.Vector {
	q := r.Quat()
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	out := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: out.Imag, Y: out.Jmag, Z: out.Kmag}
}

// Estimate is the output of a ground rotation estimate.
type Estimate struct {
	Rotation   Rotation
	Condition  Condition
	Plane      Plane     // Selected plane; zero value unless a plane was selected
	Normal     r3.Vector // Normal the rotation maps reference up onto
	Candidates int       // Number of non-degenerate candidate planes
	Points     int       // Number of input points
}
