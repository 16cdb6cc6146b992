package storage

import (
	"testing"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	schema := field.MustSchema(
		field.Spec{Name: field.O, Shape: []int{2}},
		field.Spec{Name: field.R, Shape: []int{1}},
	)
	s, err := New(schema, 3)
	require.NoError(t, err)
	return s
}

func TestNewRejectsZeroCapacity(t *testing.T) {
	_, err := New(field.MustSchema(field.Spec{Name: field.O}), 0)
	assert.Error(t, err)
}

func TestPutAndGather(t *testing.T) {
	s := newTestStorage(t)

	o, _ := field.FromRows([]int{2}, []float64{1, 1}, []float64{2, 2})
	r, _ := field.FromRows([]int{1}, []float64{10}, []float64{20})
	s.Put([]int{2, 0}, field.Batch{field.O: o, field.R: r})

	assert.Equal(t, []float64{1, 1}, s.Row(field.O, 2))
	assert.Equal(t, []float64{20}, s.Row(field.R, 0))

	g := s.Gather([]int{0, 0, 2})
	assert.Equal(t, []int{3, 2}, g[field.O].Shape())
	assert.Equal(t, []float64{2, 2, 2, 2, 1, 1}, g[field.O].Data())

	// Gathered records are copies
	g[field.O].Row(0)[0] = -1
	assert.Equal(t, 2.0, s.Row(field.O, 0)[0])
}

func TestPutDuplicateIndexLastWins(t *testing.T) {
	s := newTestStorage(t)

	o, _ := field.FromRows([]int{2}, []float64{1, 1}, []float64{2, 2})
	r := field.Zeros(2, 1)
	s.Put([]int{1, 1}, field.Batch{field.O: o, field.R: r})

	assert.Equal(t, []float64{2, 2}, s.Row(field.O, 1))
}

func TestPrefix(t *testing.T) {
	s := newTestStorage(t)
	o, _ := field.FromRows([]int{2}, []float64{1, 1})
	s.Put([]int{0}, field.Batch{field.O: o, field.R: field.Zeros(1, 1)})

	p := s.Prefix(1)
	assert.Equal(t, 1, p[field.O].Len())
	assert.Equal(t, []float64{1, 1}, p[field.O].Data())
	assert.Equal(t, 3, s.Capacity())
}
