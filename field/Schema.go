package field

import (
	"fmt"
	"sort"
	"strings"
)

// Well-known field names
const (
	O    = "o"    // Observation
	U    = "u"    // Action
	R    = "r"    // Reward
	AG   = "ag"   // Achieved goal
	G    = "g"    // Desired goal
	Done = "done" // Episode termination marker
	Q    = "q"    // Cached value estimate

	O2  = O + NextSuffix
	AG2 = AG + NextSuffix
	G2  = G + NextSuffix

	// NextSuffix marks the next-step view of a field
	NextSuffix = "_2"

	// InfoPrefix marks auxiliary per-step fields that are passed to
	// reward functions
	InfoPrefix = "info_"
)

// IsInfo returns whether name is an auxiliary info field
func IsInfo(name string) bool {
	return strings.HasPrefix(name, InfoPrefix)
}

// ObservationLike returns whether the field is recorded once per state
// rather than once per action. In an episode, such fields hold T+1
// steps while all other fields hold T steps.
func ObservationLike(name string) bool {
	return name == O || name == AG
}

// Spec describes a single field: its name and the shape of one step
type Spec struct {
	Name  string
	Shape []int
}

// Schema is a fixed, ordered set of field specifications. A Schema is
// resolved once at buffer construction and is never modified.
type Schema struct {
	specs []Spec
	index map[string]int
}

// NewSchema returns a new Schema. Field names must be unique and
// non-empty and all dimensions must be positive.
func NewSchema(specs ...Spec) (Schema, error) {
	if len(specs) == 0 {
		return Schema{}, fmt.Errorf("newSchema: at least one field is " +
			"required")
	}

	s := Schema{
		specs: make([]Spec, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		if spec.Name == "" {
			return Schema{}, fmt.Errorf("newSchema: field %v has no name", i)
		}
		if _, ok := s.index[spec.Name]; ok {
			return Schema{}, fmt.Errorf("newSchema: duplicate field %q",
				spec.Name)
		}
		for _, dim := range spec.Shape {
			if dim <= 0 {
				return Schema{}, fmt.Errorf("newSchema: field %q has "+
					"non-positive dimension in shape %v", spec.Name, spec.Shape)
			}
		}

		shape := make([]int, len(spec.Shape))
		copy(shape, spec.Shape)
		s.specs[i] = Spec{Name: spec.Name, Shape: shape}
		s.index[spec.Name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error
func MustSchema(specs ...Spec) Schema {
	s, err := NewSchema(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Specs returns the field specifications in declaration order
func (s Schema) Specs() []Spec {
	specs := make([]Spec, len(s.specs))
	copy(specs, s.specs)
	return specs
}

// Names returns the field names in declaration order
func (s Schema) Names() []string {
	names := make([]string, len(s.specs))
	for i := range s.specs {
		names[i] = s.specs[i].Name
	}
	return names
}

// Len returns the number of fields
func (s Schema) Len() int {
	return len(s.specs)
}

// Has returns whether the Schema declares a field
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Lookup returns the shape of a field
func (s Schema) Lookup(name string) ([]int, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	shape := make([]int, len(s.specs[i].Shape))
	copy(shape, s.specs[i].Shape)
	return shape, true
}

// Map returns a new Schema with each shape replaced by f(name, shape)
func (s Schema) Map(f func(name string, shape []int) []int) Schema {
	specs := make([]Spec, len(s.specs))
	for i, spec := range s.specs {
		specs[i] = Spec{Name: spec.Name, Shape: f(spec.Name, spec.Shape)}
	}
	return MustSchema(specs...)
}

// Validate checks that batch holds exactly the fields of the Schema,
// that every field has leading dimension n, and that every record
// has the declared shape.
func (s Schema) Validate(batch Batch, n int) error {
	for name := range batch {
		if !s.Has(name) {
			return fmt.Errorf("unknown field %q", name)
		}
	}

	for _, spec := range s.specs {
		a, ok := batch[spec.Name]
		if !ok || a == nil {
			return fmt.Errorf("missing field %q", spec.Name)
		}
		if a.Len() != n {
			return fmt.Errorf("field %q has batch size %v, expected %v",
				spec.Name, a.Len(), n)
		}
		if !SameShape(a.StepShape(), spec.Shape) {
			return fmt.Errorf("field %q has shape %v per record, "+
				"expected %v", spec.Name, a.StepShape(), spec.Shape)
		}
	}
	return nil
}

// String returns the string representation of the Schema
func (s Schema) String() string {
	parts := make([]string, len(s.specs))
	for i, spec := range s.specs {
		parts[i] = fmt.Sprintf("%v:%v", spec.Name, spec.Shape)
	}
	sort.Strings(parts)
	return "Schema{" + strings.Join(parts, " ") + "}"
}
