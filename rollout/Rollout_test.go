package rollout

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/environment"
	"github.com/samuelfneumann/goreplay/expreplay"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/reward"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	horizon   = 30
	threshold = 0.05
)

func pointReach(t *testing.T, n int) []environment.Environment {
	envs := make([]environment.Environment, n)
	for i := range envs {
		env, _, err := environment.NewPointReach(2, horizon, threshold,
			uint64(10*i))
		require.NoError(t, err)
		envs[i] = env
	}
	return envs
}

func episodeConfig() expreplay.Config {
	return expreplay.Config{
		Strategy:     expreplay.Future,
		FixedHorizon: true,
		T:            horizon,
		Size:         horizon * 8,
		K:            4,
		Seed:         1,
	}
}

func TestWorkerRewardsMatchRewardFunc(t *testing.T) {
	config := episodeConfig()
	s, err := config.Schema(2, 2, 2, map[string][]int{
		environment.SuccessInfo: {1},
	})
	require.NoError(t, err)

	w, err := NewWorker(pointReach(t, 3), Greedy(1, environment.MaxStep), s,
		horizon, zerolog.Nop())
	require.NoError(t, err)
	ep, err := w.Generate()
	require.NoError(t, err)
	assert.Equal(t, 3, w.Episodes())

	// Reward at t is computed from the goal achieved at t+1
	fn := reward.GoalDistance(threshold, true)
	for b := 0; b < 3; b++ {
		for i := 0; i < horizon; i++ {
			ag := field.Zeros(1, 2)
			copy(ag.Data(), ep[field.AG].Row(b)[(i+1)*2:(i+2)*2])
			g := field.Zeros(1, 2)
			copy(g.Data(), ep[field.G].Row(b)[i*2:(i+1)*2])
			r, err := fn(ag, g, nil)
			require.NoError(t, err)
			assert.Equal(t, r.Data()[0], ep[field.R].At(b, i, 0))
			assert.Equal(t, -r.Data()[0],
				1-ep["info_is_success"].At(b, i, 0))
		}
	}

	// A greedy policy reaches every goal within the horizon
	for b := 0; b < 3; b++ {
		assert.Equal(t, 1.0, ep["info_is_success"].At(b, horizon-1, 0))
	}
}

func TestWorkerFeedsHindsightReplay(t *testing.T) {
	config := episodeConfig()
	s, err := config.Schema(2, 2, 2, map[string][]int{
		environment.SuccessInfo: {1},
	})
	require.NoError(t, err)
	fn := reward.GoalDistance(threshold, true)
	buffer, err := config.Create(s, fn, zerolog.Nop())
	require.NoError(t, err)

	w, err := NewWorker(pointReach(t, 2), Random(2, environment.MaxStep, 3),
		s, horizon, zerolog.Nop())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		ep, err := w.Generate()
		require.NoError(t, err)
		require.NoError(t, buffer.Store(ep))
	}
	assert.Equal(t, 6, buffer.CurrentSize())

	batch, err := buffer.Sample(256)
	require.NoError(t, err)
	want, err := fn(batch[field.AG2], batch[field.G2], batch.Info())
	require.NoError(t, err)
	assert.Equal(t, want.Data(), batch[field.R].Data())
}

func TestWorkerHorizonMismatch(t *testing.T) {
	config := episodeConfig()
	config.T = horizon + 1
	s, err := config.Schema(2, 2, 2, nil)
	require.NoError(t, err)

	w, err := NewWorker(pointReach(t, 1), Greedy(1, 1), s, horizon+1,
		zerolog.Nop())
	require.NoError(t, err)
	_, err = w.Generate()
	assert.Error(t, err)
}

func TestNewWorkerValidation(t *testing.T) {
	s, err := episodeConfig().Schema(2, 2, 2, nil)
	require.NoError(t, err)

	_, err = NewWorker(nil, Greedy(1, 1), s, horizon, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewWorker(pointReach(t, 1), nil, s, horizon, zerolog.Nop())
	assert.Error(t, err)
}
