package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// DurationSampler generates integer durations in virtual-time units.
type DurationSampler interface {
	// Sample returns a duration >= 1.
	Sample(rng *rand.Rand) int64
}

// ExponentialSampler produces exponentially-distributed durations with the
// given mean (the scale parameter), rounded half-to-even and floored at 1.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	val := rng.ExpFloat64() * s.mean
	result := int64(math.RoundToEven(val))
	if result < 1 {
		return 1
	}
	return result
}

// ConstantSampler always returns the same fixed duration.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	if s.value < 1 {
		return 1
	}
	return s.value
}

// UniformIntSampler draws integers uniformly from the closed range [min, max].
type UniformIntSampler struct {
	min, max int64
}

func (s *UniformIntSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	return s.min + rng.Int63n(s.max-s.min+1)
}

// NewUniformIntSampler creates a sampler over [min, max]; min must not exceed max.
func NewUniformIntSampler(min, max int64) (*UniformIntSampler, error) {
	if min > max {
		return nil, fmt.Errorf("uniform range is empty: min %d > max %d", min, max)
	}
	return &UniformIntSampler{min: min, max: max}, nil
}

// DistSpec names a duration distribution and its parameters.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Exponential returns a DistSpec for an exponential distribution with the given mean.
func Exponential(mean float64) DistSpec {
	return DistSpec{Type: "exponential", Params: map[string]float64{"mean": mean}}
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewDurationSampler creates a DurationSampler from a DistSpec.
func NewDurationSampler(spec DistSpec) (DurationSampler, error) {
	switch spec.Type {
	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		mean := spec.Params["mean"]
		if math.IsNaN(mean) || math.IsInf(mean, 0) || mean <= 0 {
			return nil, fmt.Errorf("exponential mean must be a finite positive number, got %f", mean)
		}
		return &ExponentialSampler{mean: mean}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		val := spec.Params["value"]
		if val < 1 || val != math.Trunc(val) {
			return nil, fmt.Errorf("constant value must be an integer >= 1, got %f", val)
		}
		return &ConstantSampler{value: int64(val)}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := spec.Params["min"], spec.Params["max"]
		if lo < 1 {
			return nil, fmt.Errorf("uniform min must be >= 1, got %f", lo)
		}
		return NewUniformIntSampler(int64(lo), int64(hi))

	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: exponential, constant, uniform", spec.Type)
	}
}
