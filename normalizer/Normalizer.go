// Package normalizer keeps running statistics of observations and goals
// and normalizes them to zero mean and unit variance.
package normalizer

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/utils/floatutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r1"
)

// DefaultClip is the default bound on normalized values
const DefaultClip = 5.0

// Normalizer tracks the running mean and standard deviation of vectors
// of a fixed size
type Normalizer struct {
	size  int
	eps   float64
	clip  r1.Interval
	count float64

	sum, sumSq []float64
	mean, std  []float64
}

// New returns a new Normalizer of vectors with size elements. The
// standard deviation never drops below eps and normalized values are
// clipped to [-clip, clip].
func New(size int, eps, clip float64) (*Normalizer, error) {
	if size < 1 {
		return nil, fmt.Errorf("new: size must be positive (have %v)", size)
	}
	if eps <= 0 || clip <= 0 {
		return nil, fmt.Errorf("new: eps and clip must be positive "+
			"\n\twant(>0, >0)\n\thave(%v, %v)", eps, clip)
	}

	n := &Normalizer{
		size:  size,
		eps:   eps,
		clip:  floatutils.Symmetric(clip),
		sum:   make([]float64, size),
		sumSq: make([]float64, size),
		mean:  make([]float64, size),
		std:   make([]float64, size),
	}
	n.recompute()
	return n, nil
}

// vectors returns the vectors stored in a, which must have a trailing
// dimension equal to the size of the Normalizer
func (n *Normalizer) vectors(a *field.Array) ([][]float64, error) {
	shape := a.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != n.size {
		return nil, fmt.Errorf("trailing dimension of shape %v must be %v",
			shape, n.size)
	}

	data := a.Data()
	out := make([][]float64, 0, len(data)/n.size)
	for i := 0; i < len(data); i += n.size {
		out = append(out, data[i:i+n.size])
	}
	return out, nil
}

// Update adds every vector in a to the running statistics
func (n *Normalizer) Update(a *field.Array) error {
	vecs, err := n.vectors(a)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}

	sq := make([]float64, n.size)
	for _, v := range vecs {
		floats.Add(n.sum, v)
		floats.MulTo(sq, v, v)
		floats.Add(n.sumSq, sq)
	}
	n.count += float64(len(vecs))
	n.recompute()
	return nil
}

// recompute updates the mean and standard deviation from the running
// sums
func (n *Normalizer) recompute() {
	count := math.Max(n.count, 1)
	floats.ScaleTo(n.mean, 1/count, n.sum)
	for i := range n.std {
		variance := n.sumSq[i]/count - n.mean[i]*n.mean[i]
		n.std[i] = math.Sqrt(math.Max(n.eps*n.eps, variance))
	}
}

// Normalize returns a copy of a with every vector normalized and
// clipped
func (n *Normalizer) Normalize(a *field.Array) (*field.Array, error) {
	out := a.Clone()
	vecs, err := n.vectors(out)
	if err != nil {
		return nil, fmt.Errorf("normalize: %v", err)
	}
	for _, v := range vecs {
		floats.Sub(v, n.mean)
		floats.Div(v, n.std)
		floatutils.ClipSlice(v, n.clip)
	}
	return out, nil
}

// Denormalize returns a copy of a with the normalization undone
func (n *Normalizer) Denormalize(a *field.Array) (*field.Array, error) {
	out := a.Clone()
	vecs, err := n.vectors(out)
	if err != nil {
		return nil, fmt.Errorf("denormalize: %v", err)
	}
	for _, v := range vecs {
		floats.Mul(v, n.std)
		floats.Add(v, n.mean)
	}
	return out, nil
}

// Count returns the number of vectors seen
func (n *Normalizer) Count() int {
	return int(n.count)
}

// Mean returns a copy of the running mean
func (n *Normalizer) Mean() []float64 {
	return append([]float64(nil), n.mean...)
}

// Std returns a copy of the running standard deviation
func (n *Normalizer) Std() []float64 {
	return append([]float64(nil), n.std...)
}
