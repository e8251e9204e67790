package planefit

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestRotationFromNormal(t *testing.T) {
	up := r3.Vector{Z: 1}
	tilted := r3.Vector{X: 1, Z: 1}.Normalize()

	table := []struct {
		name      string
		normal    r3.Vector
		angle     float64
		axis      r3.Vector
		condition Condition
	}{
		{"same direction", r3.Vector{Z: 1}, 0, r3.Vector{Z: 1}, DegenerateNormalAlignment},
		{"opposite direction", r3.Vector{Z: -1}, math.Pi, r3.Vector{X: 1}, DegenerateNormalAlignment},
		{"plus Y", r3.Vector{Y: 1}, math.Pi / 2, r3.Vector{X: -1}, Ok},
		{"minus Y", r3.Vector{Y: -1}, math.Pi / 2, r3.Vector{X: 1}, Ok},
		{"45 degrees toward X", tilted, math.Pi / 4, r3.Vector{Y: 1}, Ok},
	}

	for i, test := range table {
		rot, cond := RotationFromNormal(up, test.normal, 1e-9)
		if cond != test.condition {
			t.Errorf("%d) %s: condition %v, want %v", i+1, test.name, cond, test.condition)
		}
		if math.Abs(rot.Angle-test.angle) > 1e-9 {
			t.Errorf("%d) %s: angle %.6g, want %.6g", i+1, test.name, rot.Angle, test.angle)
		}
		if !vecNear(rot.Axis, test.axis, 1e-9) {
			t.Errorf("%d) %s: axis %v, want %v", i+1, test.name, rot.Axis, test.axis)
		}
		if got := rot.Apply(up); !vecNear(got, test.normal, 1e-9) {
			t.Errorf("%d) %s: rotated up is %v, want %v", i+1, test.name, got, test.normal)
		}
	}
}

func TestRotationFromNormal_OtherReference(t *testing.T) {
	up := r3.Vector{X: 1, Y: 1}.Normalize()
	rot, cond := RotationFromNormal(up, up.Mul(-1), 1e-9)
	if cond != DegenerateNormalAlignment {
		t.Errorf("condition %v, want %v", cond, DegenerateNormalAlignment)
	}
	if math.Abs(rot.Axis.Dot(up)) > 1e-12 {
		t.Errorf("half-turn axis %v not perpendicular to %v", rot.Axis, up)
	}
	if math.Abs(rot.Axis.Norm()-1) > 1e-12 {
		t.Errorf("half-turn axis %v not unit length", rot.Axis)
	}
	if got := rot.Apply(up); !vecNear(got, up.Mul(-1), 1e-9) {
		t.Errorf("rotated up is %v, want %v", got, up.Mul(-1))
	}
}

func TestRotationFromNormal_TinyAngleIsIdentity(t *testing.T) {
	up := r3.Vector{Z: 1}
	normal := r3.Vector{X: 1e-7, Z: 1}.Normalize()
	rot, cond := RotationFromNormal(up, normal, 1e-6)
	if !rot.IsIdentity() {
		t.Errorf("got %+v, want identity", rot)
	}
	if cond != DegenerateNormalAlignment {
		t.Errorf("condition %v, want %v", cond, DegenerateNormalAlignment)
	}
}

func TestRotationFromNormal_JustAboveTolerance(t *testing.T) {
	up := r3.Vector{Z: 1}
	normal := r3.Vector{X: 2e-6, Z: 1}.Normalize()
	rot, cond := RotationFromNormal(up, normal, 1e-6)
	if cond != Ok {
		t.Fatalf("condition %v, want %v", cond, Ok)
	}
	if rot.IsIdentity() || math.Abs(rot.Angle-2e-6) > 1e-9 {
		t.Errorf("angle %v, want 2e-6", rot.Angle)
	}
	if !vecNear(rot.Axis, r3.Vector{Y: 1}, 1e-9) {
		t.Errorf("axis %v, want +Y", rot.Axis)
	}
}

func TestRotation_Representations(t *testing.T) {
	id := IdentityRotation()
	if q := id.Quat(); q.Real != 1 || q.Imag != 0 || q.Jmag != 0 || q.Kmag != 0 {
		t.Errorf("identity quaternion %v", q)
	}

	rot := Rotation{Axis: r3.Vector{X: 1}, Angle: math.Pi / 2}
	q := rot.Quat()
	want := math.Sqrt(0.5)
	if math.Abs(q.Real-want) > 1e-12 || math.Abs(q.Imag-want) > 1e-12 {
		t.Errorf("quaternion %v, want (%.4f, %.4f, 0, 0)", q, want, want)
	}
	norm := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if math.Abs(norm-1) > 1e-12 {
		t.Errorf("quaternion norm %v, want 1", norm)
	}

	aa := rot.AxisAngle()
	if aa.Theta != rot.Angle || aa.RX != 1 || aa.RY != 0 || aa.RZ != 0 {
		t.Errorf("axis-angle %+v does not match %+v", aa, rot)
	}

	oq := rot.Orientation().Quaternion()
	if math.Abs(oq.Real-q.Real) > 1e-12 || math.Abs(oq.Imag-q.Imag) > 1e-12 {
		t.Errorf("orientation quaternion %v, want %v", oq, q)
	}

	// +Y rotated a quarter turn about +X lands on +Z.
	if got := rot.Apply(r3.Vector{Y: 1}); !vecNear(got, r3.Vector{Z: 1}, 1e-12) {
		t.Errorf("Apply(+Y) = %v, want +Z", got)
	}
}

func TestPlane_Equation(t *testing.T) {
	p := Plane{Origin: r3.Vector{X: 3, Y: -1, Z: 5}, Normal: r3.Vector{Z: 1}}
	if got := p.Offset(); got != 5 {
		t.Errorf("offset %v, want 5", got)
	}
	if got := p.Equation(); got != [4]float64{0, 0, 1, 5} {
		t.Errorf("equation %v", got)
	}
	if got := p.Distance(r3.Vector{X: 10, Y: 10, Z: 7}); got != 2 {
		t.Errorf("distance %v, want 2", got)
	}

	pc := p.PointcloudPlane()
	eq := pc.Equation()
	if eq[0] != 0 || eq[1] != 0 || eq[2] != 1 || eq[3] != -5 {
		t.Errorf("pointcloud plane equation %v, want [0 0 1 -5]", eq)
	}
}

func TestCondition_Err(t *testing.T) {
	table := []struct {
		c    Condition
		err  error
		name string
	}{
		{Ok, nil, "ok"},
		{InsufficientPoints, ErrInsufficientPoints, "insufficient_points"},
		{NoValidPlane, ErrNoValidPlane, "no_valid_plane"},
		{DegenerateNormalAlignment, ErrDegenerateAlignment, "degenerate_normal_alignment"},
	}
	for _, test := range table {
		if got := test.c.Err(); got != test.err {
			t.Errorf("%v.Err() = %v, want %v", test.c, got, test.err)
		}
		if got := test.c.String(); got != test.name {
			t.Errorf("String() = %q, want %q", got, test.name)
		}
	}
}
