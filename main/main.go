package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/biotinker/meshalign"
	"github.com/biotinker/meshalign/internal/scene"
	"github.com/biotinker/meshalign/internal/settings"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

func main() {
	scenePath := flag.String("scene", "", "path to scene JSON file")
	settingsPath := flag.String("settings", "", "path to settings JSON file (optional)")
	flag.Parse()

	logger := logging.NewDebugLogger("meshalign")

	if *scenePath == "" {
		logger.Fatal("-scene flag is required")
	}
	cfg := meshalign.DefaultConfig()
	if *settingsPath != "" {
		loaded, err := settings.Load(*settingsPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = *loaded
	}

	s, err := scene.Load(*scenePath)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("Scene: %d ground triangles, %d targets", s.Ground.Len(), len(s.Targets))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	aligner, err := meshalign.NewAligner(s.Ground, logger, &cfg)
	if err != nil {
		logger.Fatal(err)
	}

	targets := make([]meshalign.Target, len(s.Targets))
	for i, m := range s.Targets {
		targets[i] = m
	}
	reports, err := aligner.AlignAll(ctx, targets)
	for _, r := range reports {
		out, mErr := protojson.Marshal(spatialmath.PoseToProtobuf(r.Pose))
		if mErr != nil {
			logger.Fatal(mErr)
		}
		fmt.Printf("%s\t%v\t%s\n", r.Target, r.Estimate.Condition, out)
	}
	if err != nil {
		logger.Fatal(err)
	}
}
