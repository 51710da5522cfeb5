package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/desksim/sim"
)

var (
	// CLI flags for the search configuration; applied over --config only when set
	configPath         string  // YAML config file, defaults apply when empty
	seed               int64   // Seed of the workload stream
	simulationHorizon  int64   // A run succeeds once the clock passes this tick
	queueCapacity      int     // Max waiting patients, -1 for unbounded
	interarrivalLambda float64 // Mean of the exponential interarrival gap
	serviceLambda      float64 // Mean of the exponential service duration
	emergencyThreshold int     // Priorities up to this value wait at most their own value
	nonEmergencyWait   int64   // Allowed wait above the emergency threshold
	initialDesks       int     // Desk count of the first run
	maxDesks           int     // Upper bound of the search, 0 for none
	reseedPerRun       bool    // Give every desk count its own random stream

	// CLI flags for output
	logLevel     string // Log verbosity level
	outputFormat string // text or json
	traceFile    string // JSON lines event log destination
	traceSummary bool   // Print event log statistics after the search
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "desksim",
	Short: "Discrete-event search for the minimal number of service desks",
}

// runCmd executes the desk-count search using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the desk-count search",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(configPath, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		opts := outputOptions{
			Format:       outputFormat,
			TraceFile:    traceFile,
			TraceSummary: traceSummary,
		}
		if err := runSearch(*cfg, opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML search configuration (see `desksim config`)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random patient generation")
	runCmd.Flags().Int64Var(&simulationHorizon, "horizon", defaults.Horizon, "Simulation horizon of every run (in ticks)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Facility configs
	runCmd.Flags().IntVar(&queueCapacity, "queue-capacity", defaults.QueueCapacity, "Maximum number of waiting patients (-1 for unbounded)")
	runCmd.Flags().IntVar(&emergencyThreshold, "emergency-threshold", defaults.EmergencyThreshold, "Highest priority treated as an emergency")
	runCmd.Flags().Int64Var(&nonEmergencyWait, "non-emergency-wait", defaults.NonEmergencyAllowedWait, "Allowed waiting time of non-emergency patients")

	// Workload configs
	runCmd.Flags().Float64Var(&interarrivalLambda, "interarrival-lambda", defaults.InterarrivalLambda, "Mean interarrival gap (exponential scale)")
	runCmd.Flags().Float64Var(&serviceLambda, "service-lambda", defaults.ServiceLambda, "Mean service duration (exponential scale)")
	runCmd.Flags().BoolVar(&reseedPerRun, "reseed-per-run", defaults.ReseedPerRun, "Draw every desk count from its own random stream")

	// Search configs
	runCmd.Flags().IntVar(&initialDesks, "initial-desks", defaults.InitialDeskCount, "Desk count of the first run")
	runCmd.Flags().IntVar(&maxDesks, "max-desks", defaults.MaxDeskCount, "Give up after this many desks (0 for no limit)")

	// Output configs
	runCmd.Flags().StringVar(&outputFormat, "format", formatText, "Output format (text, json)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write every patient transition as JSON lines to this file")
	runCmd.Flags().BoolVar(&traceSummary, "trace-summary", false, "Print event log statistics after the search")

	// Attach `run` and `config` as subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
