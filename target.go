package meshalign

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rdk/spatialmath"
)

// Mesh is a Target described only by its world bounds and pose.
type Mesh struct {
	name   string
	lo, hi r3.Vector
	pose   spatialmath.Pose
}

// NewMesh creates a Mesh whose pose sits at the centre of its bounds with no rotation.
func NewMesh(name string, lo, hi r3.Vector) *Mesh {
	return &Mesh{
		name: name,
		lo:   lo,
		hi:   hi,
		pose: spatialmath.NewPoseFromPoint(lo.Add(hi).Mul(0.5)),
	}
}

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// Bounds returns the mesh's world bounding box.
func (m *Mesh) Bounds() (r3.Vector, r3.Vector) { return m.lo, m.hi }

// Pose returns the mesh's current pose.
func (m *Mesh) Pose() spatialmath.Pose { return m.pose }

// SetPose replaces the mesh's pose. The bounds are left as sampled.
func (m *Mesh) SetPose(p spatialmath.Pose) { m.pose = p }
