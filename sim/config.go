package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/desksim/sim/workload"
)

// UnboundedQueue disables the waiting-line capacity check.
const UnboundedQueue = -1

// Config holds every parameter of a desk-count search. It is read once when a
// search starts and is immutable for all of its runs.
type Config struct {
	Seed                    int64   `yaml:"seed"`                       // Master seed of the workload stream
	PriorityMin             int     `yaml:"priority_min"`               // Most urgent priority (inclusive)
	PriorityMax             int     `yaml:"priority_max"`               // Least urgent priority (inclusive)
	EmergencyThreshold      int     `yaml:"emergency_threshold"`        // Priorities <= this wait at most their own value
	NonEmergencyAllowedWait int64   `yaml:"non_emergency_allowed_wait"` // Allowed wait above the threshold
	QueueCapacity           int     `yaml:"queue_capacity"`             // Max waiting patients, UnboundedQueue for no limit
	Horizon                 int64   `yaml:"simulation_horizon"`         // Run succeeds once the clock passes this tick
	InterarrivalLambda      float64 `yaml:"interarrival_lambda"`        // Exponential scale (mean) of interarrival gaps
	ServiceLambda           float64 `yaml:"service_lambda"`             // Exponential scale (mean) of service durations
	InitialDeskCount        int     `yaml:"initial_desk_count"`         // Desk count of the first run
	MaxDeskCount            int     `yaml:"max_desk_count"`             // 0 = search without an upper bound
	ReseedPerRun            bool    `yaml:"reseed_per_run"`             // false = one stream continues across runs
}

// DefaultConfig returns the hospital scenario the search was built around.
func DefaultConfig() Config {
	return Config{
		Seed:                    10,
		PriorityMin:             1,
		PriorityMax:             10,
		EmergencyThreshold:      5,
		NonEmergencyAllowedWait: 60,
		QueueCapacity:           10,
		Horizon:                 2000,
		InterarrivalLambda:      0.76,
		ServiceLambda:           15,
		InitialDeskCount:        1,
		MaxDeskCount:            0,
		ReseedPerRun:            false,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// Unknown keys are rejected so that typos cannot silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks parameter ranges. All failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.PriorityMin < 1 {
		return fmt.Errorf("%w: priority_min must be >= 1, got %d", ErrInvalidConfig, c.PriorityMin)
	}
	if c.PriorityMax < c.PriorityMin {
		return fmt.Errorf("%w: priority_max (%d) must be >= priority_min (%d)", ErrInvalidConfig, c.PriorityMax, c.PriorityMin)
	}
	if c.EmergencyThreshold < 0 {
		return fmt.Errorf("%w: emergency_threshold must be non-negative, got %d", ErrInvalidConfig, c.EmergencyThreshold)
	}
	if c.NonEmergencyAllowedWait < 0 {
		return fmt.Errorf("%w: non_emergency_allowed_wait must be non-negative, got %d", ErrInvalidConfig, c.NonEmergencyAllowedWait)
	}
	if c.QueueCapacity < UnboundedQueue {
		return fmt.Errorf("%w: queue_capacity must be >= 0 or %d for unbounded, got %d", ErrInvalidConfig, UnboundedQueue, c.QueueCapacity)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: simulation_horizon must be positive, got %d", ErrInvalidConfig, c.Horizon)
	}
	if err := validateFinitePositive("interarrival_lambda", c.InterarrivalLambda); err != nil {
		return err
	}
	if err := validateFinitePositive("service_lambda", c.ServiceLambda); err != nil {
		return err
	}
	if c.InitialDeskCount < 1 {
		return fmt.Errorf("%w: initial_desk_count must be >= 1, got %d", ErrInvalidConfig, c.InitialDeskCount)
	}
	if c.MaxDeskCount != 0 && c.MaxDeskCount < c.InitialDeskCount {
		return fmt.Errorf("%w: max_desk_count (%d) must be 0 or >= initial_desk_count (%d)", ErrInvalidConfig, c.MaxDeskCount, c.InitialDeskCount)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfig, name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %f", ErrInvalidConfig, name, val)
	}
	return nil
}

// AllowedWait returns the longest wait a patient of the given priority tolerates.
func (c *Config) AllowedWait(priority int) int64 {
	if priority <= c.EmergencyThreshold {
		return int64(priority)
	}
	return c.NonEmergencyAllowedWait
}

// QueueBounded reports whether the waiting-line capacity check is active.
func (c *Config) QueueBounded() bool {
	return c.QueueCapacity != UnboundedQueue
}

// GeneratorSpec maps the config onto the random arrival stream description.
func (c *Config) GeneratorSpec() workload.GeneratorSpec {
	return workload.GeneratorSpec{
		PriorityMin:  c.PriorityMin,
		PriorityMax:  c.PriorityMax,
		Service:      workload.Exponential(c.ServiceLambda),
		Interarrival: workload.Exponential(c.InterarrivalLambda),
	}
}
