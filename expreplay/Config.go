package expreplay

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/reward"
)

// Strategy determines how transitions are drawn from a buffer
type Strategy string

const (
	// None draws transitions uniformly
	None Strategy = "none"

	// Future relabels transitions with goals achieved later in the
	// same episode
	Future Strategy = "her"
)

// Config implements a specific configuration of a Buffer
type Config struct {
	// Strategy is the replay strategy, either "none" or "her"
	Strategy Strategy `mapstructure:"strategy" json:"strategy"`

	// FixedHorizon determines whether whole episodes of length T are
	// stored. If false, raw transitions are stored in a ring buffer.
	FixedHorizon bool `mapstructure:"fixed_horizon" json:"fixed_horizon"`
	T            int  `mapstructure:"t" json:"t"`

	// Size is the capacity of the buffer measured in transitions
	Size int `mapstructure:"size" json:"size"`

	// K is the ratio of relabeled to regular transitions for the
	// "her" strategy
	K float64 `mapstructure:"k" json:"k"`

	Seed uint64 `mapstructure:"seed" json:"seed"`
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	switch c.Strategy {
	case None, Future:
	default:
		return newError("validate", ErrConfiguration,
			fmt.Sprintf("unknown replay strategy %q", c.Strategy))
	}
	if c.Strategy == Future && !c.FixedHorizon {
		return newError("validate", ErrConfiguration,
			"hindsight relabeling requires a fixed horizon")
	}
	if c.FixedHorizon && c.T < 1 {
		return newError("validate", ErrConfiguration,
			fmt.Sprintf("horizon must be >= 1 (have %v)", c.T))
	}
	if c.Size < 1 {
		return newError("validate", ErrConfiguration,
			"size must be positive")
	}
	if c.K < 0 {
		return newError("validate", ErrConfiguration,
			fmt.Sprintf("relabel ratio must be >= 0 (have %v)", c.K))
	}
	return nil
}

// Create creates and returns the Buffer with the specified Config. The
// schema describes a single step of each field. For the "her"
// strategy, rewardFn recomputes rewards of relabeled transitions and
// must not be nil.
func (c Config) Create(schema field.Schema, rewardFn reward.Func,
	logger zerolog.Logger) (Buffer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With().
		Str("strategy", string(c.Strategy)).
		Bool("fixed_horizon", c.FixedHorizon).
		Logger()

	if !c.FixedHorizon {
		r, err := NewRingBuffer(schema, c.Size, c.Seed, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	var sampler Sampler
	if c.Strategy == Future {
		var err error
		sampler, err = NewHindsightSampler(c.K, rewardFn, c.Seed+1)
		if err != nil {
			return nil, err
		}
	} else {
		sampler = NewUniformSampler(c.Seed + 1)
	}
	e, err := NewEpisodeBuffer(schema, c.Size, c.T, sampler, c.Seed, logger)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Schema returns the per-step schema used by the replay strategy for
// an environment with observation, action, and goal dimensions dimO,
// dimU and dimG. Info fields are added with the given shapes, their
// names prefixed with "info_" if needed. A goal dimension of 0 means
// the environment is not goal-conditioned.
//
// Ring buffers store next-step views and a done marker explicitly, so
// these fields are added when FixedHorizon is false.
func (c Config) Schema(dimO, dimU, dimG int,
	info map[string][]int) (field.Schema, error) {
	specs := []field.Spec{
		{Name: field.O, Shape: []int{dimO}},
		{Name: field.U, Shape: []int{dimU}},
		{Name: field.R, Shape: []int{1}},
	}
	if !c.FixedHorizon {
		specs = append(specs, field.Spec{Name: field.O2, Shape: []int{dimO}})
	}
	if dimG > 0 {
		specs = append(specs,
			field.Spec{Name: field.AG, Shape: []int{dimG}},
			field.Spec{Name: field.G, Shape: []int{dimG}},
		)
		if !c.FixedHorizon {
			specs = append(specs,
				field.Spec{Name: field.AG2, Shape: []int{dimG}},
				field.Spec{Name: field.G2, Shape: []int{dimG}},
			)
		}
	}

	infoNames := make([]string, 0, len(info))
	for name := range info {
		infoNames = append(infoNames, name)
	}
	sort.Strings(infoNames)
	for _, name := range infoNames {
		full := name
		if !field.IsInfo(full) {
			full = field.InfoPrefix + name
		}
		specs = append(specs, field.Spec{Name: full, Shape: info[name]})
	}

	if !c.FixedHorizon {
		specs = append(specs, field.Spec{Name: field.Done, Shape: []int{1}})
	}
	return field.NewSchema(specs...)
}
