package rollout

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/environment"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/timestep"
	"github.com/samuelfneumann/goreplay/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Policy selects an action at a TimeStep
type Policy func(t timestep.TimeStep) mat.Vector

// Greedy returns a Policy which moves the achieved goal towards the
// desired goal with actions gain * (g - ag), each dimension clipped to
// [-maxAction, maxAction]
func Greedy(gain, maxAction float64) Policy {
	return func(t timestep.TimeStep) mat.Vector {
		action := mat.NewVecDense(t.DesiredGoal.Len(), nil)
		action.SubVec(t.DesiredGoal, t.AchievedGoal)
		action.ScaleVec(gain, action)
		floatutils.ClipSlice(action.RawVector().Data,
			floatutils.Symmetric(maxAction))
		return action
	}
}

// Random returns a Policy which selects actions of dim dimensions
// uniformly in [-maxAction, maxAction]
func Random(dim int, maxAction float64, seed uint64) Policy {
	starter := environment.NewUniformStarter(
		environment.Box(r1.Interval{Min: -maxAction, Max: maxAction}, dim),
		seed,
	)
	return func(timestep.TimeStep) mat.Vector {
		return starter.Start()
	}
}

// Worker generates batches of episodes by running a Policy in a set of
// environments in lockstep
type Worker struct {
	envs     []environment.Environment
	policy   Policy
	recorder *Recorder
	logger   zerolog.Logger

	episodes int
}

// NewWorker returns a new Worker recording one episode per environment
// in each call to Generate
func NewWorker(envs []environment.Environment, policy Policy,
	schema field.Schema, horizon int, logger zerolog.Logger) (*Worker,
	error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("newWorker: at least one environment is " +
			"required")
	}
	if policy == nil {
		return nil, fmt.Errorf("newWorker: nil policy")
	}
	recorder, err := NewRecorder(schema, len(envs), horizon)
	if err != nil {
		return nil, fmt.Errorf("newWorker: %v", err)
	}

	return &Worker{
		envs:     envs,
		policy:   policy,
		recorder: recorder,
		logger:   logger,
	}, nil
}

// Generate runs one episode in each environment and returns them as an
// episode batch. Every episode must last exactly the horizon of the
// Worker.
func (w *Worker) Generate() (field.Batch, error) {
	current := make([]timestep.TimeStep, len(w.envs))
	for i, env := range w.envs {
		current[i] = env.Reset()
	}
	if err := w.recorder.Reset(current); err != nil {
		return nil, fmt.Errorf("generate: %v", err)
	}

	actions := make([]mat.Vector, len(w.envs))
	for t := 0; t < w.recorder.horizon; t++ {
		next := make([]timestep.TimeStep, len(w.envs))
		for i, env := range w.envs {
			actions[i] = w.policy(current[i])
			var last bool
			next[i], last = env.Step(actions[i])
			if last != (t == w.recorder.horizon-1) {
				return nil, fmt.Errorf("generate: episode of environment "+
					"%v ended at step %v, horizon is %v", i, t+1,
					w.recorder.horizon)
			}
		}
		if err := w.recorder.Record(actions, next); err != nil {
			return nil, fmt.Errorf("generate: %v", err)
		}
		current = next
	}

	w.episodes += len(w.envs)
	w.logger.Debug().
		Int("episodes", len(w.envs)).
		Int("total_episodes", w.episodes).
		Msg("generated episodes")
	return w.recorder.Episode()
}

// Episodes returns the total number of episodes generated
func (w *Worker) Episodes() int {
	return w.episodes
}
