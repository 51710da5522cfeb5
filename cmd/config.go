package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/desksim/sim"
)

// configCmd prints the default configuration as YAML, ready to be edited and
// passed back through `run --config`.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default search configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := marshalConfig(sim.DefaultConfig())
		if err != nil {
			logrus.Fatalf("Failed to render config: %v", err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			logrus.Fatalf("Failed to write config: %v", err)
		}
	},
}

func marshalConfig(cfg sim.Config) ([]byte, error) {
	return yaml.Marshal(&cfg)
}

// resolveConfig loads path (or the defaults when path is empty) and applies
// every flag for which changed reports true. The result is validated.
func resolveConfig(path string, changed func(name string) bool) (*sim.Config, error) {
	var cfg *sim.Config
	if path != "" {
		loaded, err := sim.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		cfg = loaded
		logrus.Infof("Loaded config from %s", path)
	} else {
		defaults := sim.DefaultConfig()
		cfg = &defaults
	}
	applyFlagOverrides(cfg, changed)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags into cfg, so that a flag left
// at its default never shadows a value from the config file.
func applyFlagOverrides(cfg *sim.Config, changed func(name string) bool) {
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("horizon") {
		cfg.Horizon = simulationHorizon
	}
	if changed("queue-capacity") {
		cfg.QueueCapacity = queueCapacity
	}
	if changed("emergency-threshold") {
		cfg.EmergencyThreshold = emergencyThreshold
	}
	if changed("non-emergency-wait") {
		cfg.NonEmergencyAllowedWait = nonEmergencyWait
	}
	if changed("interarrival-lambda") {
		cfg.InterarrivalLambda = interarrivalLambda
	}
	if changed("service-lambda") {
		cfg.ServiceLambda = serviceLambda
	}
	if changed("reseed-per-run") {
		cfg.ReseedPerRun = reseedPerRun
	}
	if changed("initial-desks") {
		cfg.InitialDeskCount = initialDesks
	}
	if changed("max-desks") {
		cfg.MaxDeskCount = maxDesks
	}
}
