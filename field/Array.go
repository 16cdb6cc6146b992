// Package field implements the named, fixed-shape arrays that flow in and
// out of experience replay buffers.
package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Array is a dense row-major array of float64 whose leading dimension
// indexes records (episodes or transitions) and whose remaining
// dimensions describe the shape of a single record.
//
// An Array with shape [n] holds n scalars. The record size of such an
// array is 1.
type Array struct {
	shape []int
	data  []float64
}

// NewArray returns a new Array with the given shape backed by data. If
// data is nil, a zeroed backing slice is allocated. The backing slice
// is not copied.
func NewArray(shape []int, data []float64) (*Array, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("newArray: shape must have a leading " +
			"dimension")
	}
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("newArray: negative dimension in "+
				"shape %v", shape)
		}
		size *= dim
	}

	if data == nil {
		data = make([]float64, size)
	}
	if len(data) != size {
		return nil, fmt.Errorf("newArray: data length does not match "+
			"shape %v \n\twant(%v)\n\thave(%v)", shape, size, len(data))
	}

	s := make([]int, len(shape))
	copy(s, shape)
	return &Array{shape: s, data: data}, nil
}

// Zeros returns a zeroed Array of the given shape. Zeros panics if
// the shape is invalid.
func Zeros(shape ...int) *Array {
	a, err := NewArray(shape, nil)
	if err != nil {
		panic(err)
	}
	return a
}

// FromRows returns a new Array with one record per row, where each
// record has shape stepShape. Rows are copied.
func FromRows(stepShape []int, rows ...[]float64) (*Array, error) {
	shape := append([]int{len(rows)}, stepShape...)
	a, err := NewArray(shape, nil)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := a.SetRow(i, row); err != nil {
			return nil, fmt.Errorf("fromRows: %v", err)
		}
	}
	return a, nil
}

// Shape returns a copy of the shape of the Array
func (a *Array) Shape() []int {
	s := make([]int, len(a.shape))
	copy(s, a.shape)
	return s
}

// StepShape returns the shape of a single record
func (a *Array) StepShape() []int {
	s := make([]int, len(a.shape)-1)
	copy(s, a.shape[1:])
	return s
}

// Len returns the size of the leading dimension
func (a *Array) Len() int {
	return a.shape[0]
}

// RowSize returns the number of float64 values in a single record
func (a *Array) RowSize() int {
	return Size(a.shape[1:])
}

// Data returns the backing slice of the Array
func (a *Array) Data() []float64 {
	return a.data
}

// Row returns a view of the i-th record
func (a *Array) Row(i int) []float64 {
	rs := a.RowSize()
	return a.data[i*rs : (i+1)*rs]
}

// SetRow copies src into the i-th record
func (a *Array) SetRow(i int, src []float64) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("setRow: index %v out of range [0, %v)", i,
			a.Len())
	}
	if len(src) != a.RowSize() {
		return fmt.Errorf("setRow: illegal row length \n\twant(%v)"+
			"\n\thave(%v)", a.RowSize(), len(src))
	}
	copy(a.Row(i), src)
	return nil
}

// At returns the element at the given index
func (a *Array) At(index ...int) float64 {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("at: index %v does not match array rank %v",
			index, len(a.shape)))
	}
	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("at: index %v out of range for shape %v",
				index, a.shape))
		}
		offset = offset*a.shape[i] + idx
	}
	return a.data[offset]
}

// Clone returns a deep copy of the Array
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{shape: a.Shape(), data: data}
}

// Reshape returns a view of the Array with a new shape. The number of
// elements must not change.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	if Size(shape) != len(a.data) {
		return nil, fmt.Errorf("reshape: cannot reshape %v into %v",
			a.shape, shape)
	}
	return NewArray(shape, a.data)
}

// Prefix returns a copy of the first n records
func (a *Array) Prefix(n int) *Array {
	shape := a.Shape()
	shape[0] = n
	data := make([]float64, n*a.RowSize())
	copy(data, a.data[:len(data)])
	return &Array{shape: shape, data: data}
}

// Matrix returns a view of the Array as an n x RowSize matrix.
// Matrix panics if the Array holds no records.
func (a *Array) Matrix() *mat.Dense {
	return mat.NewDense(a.Len(), a.RowSize(), a.data)
}

// Tensor returns a copy of the Array as a tensor with the same shape
// so that it can be fed to computational graphs.
func (a *Array) Tensor() *tensor.Dense {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return tensor.New(tensor.WithShape(a.Shape()...), tensor.WithBacking(data))
}

// String returns the string representation of the Array
func (a *Array) String() string {
	return fmt.Sprintf("Array%v %v", a.shape, a.data)
}

// Size returns the number of elements described by shape. The empty
// shape describes a scalar and has size 1.
func Size(shape []int) int {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	return size
}

// SameShape returns whether two shapes are equal
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
