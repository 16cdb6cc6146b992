package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/goreplay/environment"
	"github.com/samuelfneumann/goreplay/expreplay"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/internal/config"
	"github.com/samuelfneumann/goreplay/reward"
	"github.com/samuelfneumann/goreplay/rollout"
)

// info describes the info fields recorded from the environments
var info = map[string][]int{environment.SuccessInfo: {1}}

// rewardFunc returns the reward function of the configured environments
func rewardFunc(c *config.Config) reward.Func {
	return reward.GoalDistance(c.Env.Threshold, true)
}

// newBuffer returns the configured replay buffer
func newBuffer(c *config.Config, seedOffset uint64) (expreplay.Buffer,
	error) {
	replay := c.Replay
	replay.Seed += seedOffset
	schema, err := replay.Schema(c.Env.Dim, c.Env.Dim, c.Env.Dim, info)
	if err != nil {
		return nil, err
	}
	return replay.Create(schema, rewardFunc(c), logger)
}

// newWorker returns a worker generating one episode in each of the
// configured environments per call to Generate
func newWorker(c *config.Config) (*rollout.Worker, error) {
	horizon := c.Replay.T
	if !c.Replay.FixedHorizon && horizon < 1 {
		return nil, fmt.Errorf("replay.t must be set to generate episodes")
	}

	envs := make([]environment.Environment, c.Env.Workers)
	for i := range envs {
		env, _, err := environment.NewPointReach(c.Env.Dim, horizon,
			c.Env.Threshold, c.Env.Seed+uint64(2*i))
		if err != nil {
			return nil, err
		}
		envs[i] = env
	}

	policy := rollout.Random(c.Env.Dim, environment.MaxStep, c.Env.Seed)
	if c.Env.Gain > 0 {
		policy = rollout.Greedy(c.Env.Gain, environment.MaxStep)
	}

	schema, err := expreplay.Config{FixedHorizon: true}.Schema(c.Env.Dim,
		c.Env.Dim, c.Env.Dim, info)
	if err != nil {
		return nil, err
	}
	return rollout.NewWorker(envs, policy, schema, horizon, logger)
}

// describe writes the shape and mean of each field of batch
func describe(out func(format string, a ...interface{}), batch field.Batch) {
	for _, name := range batch.Names() {
		a := batch[name]
		if a.Len() == 0 {
			out("  %-18s shape %v\n", name, a.Shape())
			continue
		}
		m := a.Matrix()
		out("  %-18s shape %-12v mean %.4f range [%.4f, %.4f]\n", name,
			a.Shape(), mean(a.Data()), mat.Min(m), mat.Max(m))
	}
}
