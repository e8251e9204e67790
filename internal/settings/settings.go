// Package settings loads aligner configuration from JSON files.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"

	"github.com/biotinker/meshalign"
)

// Load reads a JSON settings file and overlays it on meshalign.DefaultConfig.
// Keys missing from the file keep their defaults; unknown keys are an error.
func Load(path string) (*meshalign.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return Decode(raw)
}

// Decode overlays raw attributes on meshalign.DefaultConfig and validates the result.
func Decode(raw map[string]interface{}) (*meshalign.Config, error) {
	cfg := meshalign.DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	if cfg.Estimator.CollinearityEpsilon < 0 || cfg.Estimator.ParallelTolerance < 0 {
		return nil, fmt.Errorf("estimator tolerances must be non-negative, got %v and %v",
			cfg.Estimator.CollinearityEpsilon, cfg.Estimator.ParallelTolerance)
	}
	return &cfg, nil
}
