package planefit

import "errors"

var (
	// ErrInsufficientPoints is reported when fewer than 3 points are available to define a plane.
	ErrInsufficientPoints = errors.New("not enough points to define a plane")

	// ErrNoValidPlane is reported when every point triple is collinear or coincident.
	ErrNoValidPlane = errors.New("no valid plane through any point triple")

	// ErrDegenerateAlignment is reported when the plane normal is parallel or antiparallel
	// to the reference up axis and the rotation axis had to be chosen explicitly.
	ErrDegenerateAlignment = errors.New("normal parallel to reference axis")

	// ErrEmptyPlaneSet is returned when median selection is asked to choose from no candidates.
	ErrEmptyPlaneSet = errors.New("empty candidate plane set")

	// ErrTooFewPoints is returned when a point set has insufficient points for an operation.
	ErrTooFewPoints = errors.New("too few points for operation")

	// ErrDegenerateFit is returned when the covariance fit produces a zero-length normal.
	ErrDegenerateFit = errors.New("degenerate plane fit")

	// ErrNilPointCloud is returned when a nil point cloud is passed.
	ErrNilPointCloud = errors.New("point cloud is nil")
)
