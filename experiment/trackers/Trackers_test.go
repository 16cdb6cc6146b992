package trackers

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episodes(t *testing.T) field.Batch {
	r, err := field.NewArray([]int{2, 3, 1}, []float64{-1, -1, 0, -1, -1, -1})
	require.NoError(t, err)
	success, err := field.NewArray([]int{2, 3, 1}, []float64{0, 0, 1, 0, 1, 0})
	require.NoError(t, err)
	return field.Batch{field.R: r, "info_is_success": success}
}

func TestReturn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(path)
	require.NoError(t, r.Track(episodes(t)))
	assert.Equal(t, []float64{-2, -3}, r.Returns())
	assert.Error(t, r.Track(field.Batch{}))

	require.NoError(t, r.Save())
	data, err := tracker.LoadData(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -3}, data)
}

func TestSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "success.bin")
	s := NewSuccess("is_success", path)
	assert.Equal(t, 0.0, s.Rate(10))

	require.NoError(t, s.Track(episodes(t)))
	assert.Equal(t, 0.5, s.Rate(10))
	assert.Equal(t, 0.0, s.Rate(1))

	require.NoError(t, s.Save())
	data, err := tracker.LoadData(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, data)

	_, err = tracker.LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
