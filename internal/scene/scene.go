// Package scene reads ground meshes, targets and point samples from disk.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/biotinker/meshalign"
	"github.com/biotinker/meshalign/sampling"
	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/spatialmath"
)

// File is the on-disk layout of a scene.
type File struct {
	Ground  [][3][3]float64 `json:"ground"` // Triangles, three [x, y, z] vertices each
	Targets []TargetFile    `json:"targets"`
}

// TargetFile describes one mesh by name and world-frame bounding box.
type TargetFile struct {
	Name string     `json:"name"`
	Min  [3]float64 `json:"min"`
	Max  [3]float64 `json:"max"`
}

// Scene is a loaded ground surface plus the meshes to place on it.
type Scene struct {
	Ground  *sampling.TriangleSurface
	Targets []*meshalign.Mesh
}

// Load reads a scene JSON file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}
	return Build(f)
}

// Build turns a decoded scene file into a Scene.
func Build(f File) (*Scene, error) {
	if len(f.Ground) == 0 {
		return nil, errors.New("scene has no ground triangles")
	}
	tris := make([]*spatialmath.Triangle, 0, len(f.Ground))
	for _, t := range f.Ground {
		tris = append(tris, spatialmath.NewTriangle(vec(t[0]), vec(t[1]), vec(t[2])))
	}

	s := &Scene{Ground: sampling.NewTriangleSurface(tris)}
	seen := make(map[string]bool, len(f.Targets))
	for i, t := range f.Targets {
		if t.Name == "" {
			return nil, fmt.Errorf("target %d has no name", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
		s.Targets = append(s.Targets, meshalign.NewMesh(t.Name, vec(t.Min), vec(t.Max)))
	}
	return s, nil
}

// LoadPoints reads a point set from a .pcd file or a .json array of [x, y, z] triples.
// PCD points are returned sorted by X, then Y, then Z, since cloud iteration order is
// not stable.
func LoadPoints(path string) ([]r3.Vector, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcd":
		cloud, err := pointcloud.NewFromFile(path, "")
		if err != nil {
			return nil, fmt.Errorf("reading point cloud: %w", err)
		}
		pts := pointcloud.CloudToPoints(cloud)
		sort.Slice(pts, func(i, j int) bool {
			a, b := pts[i], pts[j]
			if a.X != b.X {
				return a.X < b.X
			}
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.Z < b.Z
		})
		return pts, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading points file: %w", err)
		}
		var raw [][3]float64
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing points file: %w", err)
		}
		pts := make([]r3.Vector, len(raw))
		for i, p := range raw {
			pts[i] = vec(p)
		}
		return pts, nil
	default:
		return nil, fmt.Errorf("unsupported points file %q: want .pcd or .json", path)
	}
}

func vec(p [3]float64) r3.Vector {
	return r3.Vector{X: p[0], Y: p[1], Z: p[2]}
}
