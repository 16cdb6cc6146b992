// Package storage implements the fixed-capacity backing arrays shared by
// all experience replay buffers
package storage

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/field"
)

// Storage holds, for every field of a schema, a contiguous array of
// shape [capacity] + shape. Storage never resizes its arrays.
//
// Storage does not validate batches, callers must validate a batch
// against the schema before calling Put so that a failed write never
// leaves the arrays partially updated.
type Storage struct {
	schema   field.Schema
	capacity int
	arrays   map[string]*field.Array
}

// New returns a new Storage with room for capacity records of each
// field in schema
func New(schema field.Schema, capacity int) (*Storage, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be >= 1")
	}

	arrays := make(map[string]*field.Array, schema.Len())
	for _, spec := range schema.Specs() {
		shape := append([]int{capacity}, spec.Shape...)
		a, err := field.NewArray(shape, nil)
		if err != nil {
			return nil, fmt.Errorf("new: field %q: %v", spec.Name, err)
		}
		arrays[spec.Name] = a
	}

	return &Storage{
		schema:   schema,
		capacity: capacity,
		arrays:   arrays,
	}, nil
}

// Schema returns the schema of the stored records
func (s *Storage) Schema() field.Schema {
	return s.schema
}

// Capacity returns the number of slots available for each field
func (s *Storage) Capacity() int {
	return s.capacity
}

// Put writes row i of every field in batch to slot indices[i]. If an
// index appears more than once, the last write wins.
func (s *Storage) Put(indices []int, batch field.Batch) {
	for name, dst := range s.arrays {
		src := batch[name]
		for i, slot := range indices {
			copy(dst.Row(slot), src.Row(i))
		}
	}
}

// Row returns a view of the record at slot for the named field
func (s *Storage) Row(name string, slot int) []float64 {
	return s.arrays[name].Row(slot)
}

// Prefix returns a copy of the first n slots of every field
func (s *Storage) Prefix(n int) field.Batch {
	b := make(field.Batch, len(s.arrays))
	for name, a := range s.arrays {
		b[name] = a.Prefix(n)
	}
	return b
}

// Gather returns a copy of the records at the given slots of every
// field
func (s *Storage) Gather(slots []int) field.Batch {
	b := make(field.Batch, len(s.arrays))
	for name, a := range s.arrays {
		shape := a.Shape()
		shape[0] = len(slots)
		out := field.Zeros(shape...)
		for i, slot := range slots {
			copy(out.Row(i), a.Row(slot))
		}
		b[name] = out
	}
	return b
}
