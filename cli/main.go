package main

import (
	"flag"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/biotinker/meshalign"
	"github.com/biotinker/meshalign/internal/scene"
	"github.com/biotinker/meshalign/internal/settings"
	"github.com/biotinker/meshalign/planefit"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

func main() {
	pointsPath := flag.String("points", "", "path to ground points (.pcd or .json array of [x, y, z])")
	settingsPath := flag.String("settings", "", "path to settings JSON file (optional)")
	faceUp := flag.Bool("face-up", false, "flip the selected normal to face the reference up axis (overrides settings)")
	flag.Parse()

	logger := logging.NewLogger("meshalign-cli")

	if *pointsPath == "" {
		logger.Fatal("-points flag is required")
	}

	cfg := meshalign.DefaultConfig()
	if *settingsPath != "" {
		loaded, err := settings.Load(*settingsPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = *loaded
	}
	estCfg := estimatorConfig(flag.CommandLine, cfg, *faceUp)

	points, err := scene.LoadPoints(*pointsPath)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("Loaded %d points from %s", len(points), *pointsPath)

	est := planefit.NewEstimator(&estCfg).EstimateGroundRotation(points)
	if est.Condition != planefit.Ok {
		logger.Warnf("Estimate: %v", est.Condition)
	}
	logger.Infof("%d candidate planes, normal=(%.4f, %.4f, %.4f)", est.Candidates, est.Normal.X, est.Normal.Y, est.Normal.Z)

	aa := est.Rotation.AxisAngle()
	logger.Infof("Rotation: %.3f rad about (%.4f, %.4f, %.4f)", aa.Theta, aa.RX, aa.RY, aa.RZ)

	pose := spatialmath.NewPose(r3.Vector{}, est.Rotation.Orientation())
	out, err := protojson.Marshal(spatialmath.PoseToProtobuf(pose))
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(string(out))
}

// estimatorConfig returns cfg's estimator settings, with -face-up applied only when it
// was given on the command line.
func estimatorConfig(fs *flag.FlagSet, cfg meshalign.Config, faceUp bool) planefit.Config {
	estCfg := cfg.Estimator
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "face-up" {
			estCfg.FaceReferenceUp = faceUp
		}
	})
	return estCfg
}
