package expreplay

import (
	"testing"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/reward"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCreate(t *testing.T) {
	fn := reward.GoalDistance(0.05, true)

	tests := []struct {
		name   string
		config Config
		check  func(t *testing.T, b Buffer)
	}{
		{
			name:   "ring",
			config: Config{Strategy: None, Size: 100},
			check: func(t *testing.T, b Buffer) {
				require.IsType(t, &RingBuffer{}, b)
				assert.Equal(t, 100, b.MaxSize())
			},
		},
		{
			name:   "uniform",
			config: Config{Strategy: None, FixedHorizon: true, T: 10, Size: 100},
			check: func(t *testing.T, b Buffer) {
				require.IsType(t, &EpisodeBuffer{}, b)
				assert.Equal(t, 10, b.MaxSize())
				assert.Equal(t, 0.0, RelabelProbability(b.(*EpisodeBuffer).sampler))
			},
		},
		{
			name: "her",
			config: Config{Strategy: Future, FixedHorizon: true, T: 10,
				Size: 105, K: 4},
			check: func(t *testing.T, b Buffer) {
				require.IsType(t, &EpisodeBuffer{}, b)
				assert.Equal(t, 10, b.MaxSize())
				assert.InDelta(t, 0.8,
					RelabelProbability(b.(*EpisodeBuffer).sampler), 1e-12)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			schema, err := test.config.Schema(3, 2, 2, map[string][]int{
				"is_success": {1},
			})
			require.NoError(t, err)

			b, err := test.config.Create(schema, fn, nop)
			require.NoError(t, err)
			test.check(t, b)
		})
	}
}

func TestConfigSchema(t *testing.T) {
	episodic, err := Config{FixedHorizon: true}.Schema(3, 2, 2,
		map[string][]int{"info_is_success": nil})
	require.NoError(t, err)
	assert.Equal(t, []string{field.O, field.U, field.R, field.AG, field.G,
		"info_is_success"}, episodic.Names())

	ring, err := Config{}.Schema(3, 2, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{field.O, field.U, field.R, field.O2,
		field.Done}, ring.Names())
}

func TestConfigValidate(t *testing.T) {
	invalid := []Config{
		{Strategy: "prioritized", Size: 10},
		{Strategy: Future, Size: 10, K: 4},
		{Strategy: None, FixedHorizon: true, T: 0, Size: 10},
		{Strategy: None, Size: 0},
		{Strategy: Future, FixedHorizon: true, T: 5, Size: 10, K: -1},
	}
	for _, c := range invalid {
		assert.True(t, IsConfiguration(c.Validate()), "%+v", c)
	}

	// Hindsight relabeling without a reward function
	c := Config{Strategy: Future, FixedHorizon: true, T: 5, Size: 10, K: 4}
	schema, err := c.Schema(2, 1, 2, nil)
	require.NoError(t, err)
	_, err = c.Create(schema, nil, nop)
	assert.True(t, IsConfiguration(err))
}
