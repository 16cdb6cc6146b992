package field

import (
	"fmt"
	"sort"
	"strings"
)

// Batch maps field names to arrays that share a leading dimension
type Batch map[string]*Array

// Len returns the common leading dimension of all arrays in the Batch.
// An error is returned if the arrays disagree or the Batch is empty.
func (b Batch) Len() (int, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("len: empty batch")
	}

	n := -1
	for _, name := range b.Names() {
		a := b[name]
		if a == nil {
			return 0, fmt.Errorf("len: field %q is nil", name)
		}
		if n == -1 {
			n = a.Len()
		} else if a.Len() != n {
			return 0, fmt.Errorf("len: field %q has batch size %v, "+
				"others have %v", name, a.Len(), n)
		}
	}
	return n, nil
}

// Names returns the sorted field names of the Batch
func (b Batch) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the Batch
func (b Batch) Clone() Batch {
	c := make(Batch, len(b))
	for name, a := range b {
		c[name] = a.Clone()
	}
	return c
}

// Info gathers all info fields with their prefix stripped
func (b Batch) Info() map[string]*Array {
	info := make(map[string]*Array)
	for name, a := range b {
		if IsInfo(name) {
			info[strings.TrimPrefix(name, InfoPrefix)] = a
		}
	}
	return info
}

// Concat returns a new Batch holding the records of a followed by the
// records of b. Both batches must hold the same fields with the same
// record shapes.
func Concat(a, b Batch) (Batch, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("concat: batches have different fields "+
			"%v and %v", a.Names(), b.Names())
	}

	out := make(Batch, len(a))
	for name, x := range a {
		y, ok := b[name]
		if !ok {
			return nil, fmt.Errorf("concat: field %q missing from second "+
				"batch", name)
		}
		if !SameShape(x.StepShape(), y.StepShape()) {
			return nil, fmt.Errorf("concat: field %q has shapes %v and %v",
				name, x.StepShape(), y.StepShape())
		}

		shape := x.Shape()
		shape[0] = x.Len() + y.Len()
		data := make([]float64, 0, len(x.data)+len(y.data))
		data = append(data, x.data...)
		data = append(data, y.data...)
		out[name] = &Array{shape: shape, data: data}
	}
	return out, nil
}
