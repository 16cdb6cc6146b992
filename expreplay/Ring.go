package expreplay

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/utils/intutils"
	"golang.org/x/exp/rand"
)

// RingBuffer implements a Buffer of raw transitions stored regardless
// of episode boundaries. When full, the oldest transitions are
// overwritten first.
//
// Every record stored in a RingBuffer must hold both the current and
// next views of observation and goal fields, e.g. o and o_2.
type RingBuffer struct {
	*base
	pointer int
	rng     *rand.Rand
}

// NewRingBuffer returns a new RingBuffer holding at most
// sizeInTransitions transitions whose fields are described by schema.
func NewRingBuffer(schema field.Schema, sizeInTransitions int, seed uint64,
	logger zerolog.Logger) (*RingBuffer, error) {
	b, err := newBase(schema, sizeInTransitions, logger)
	if err != nil {
		return nil, err
	}

	r := &RingBuffer{
		base: b,
		rng:  rand.New(rand.NewSource(seed)),
	}
	b.allocate = r.storageIdx
	b.reset = func() { r.pointer = 0 }
	return r, nil
}

// storageIdx returns the next inc consecutive slots starting at the
// write pointer, wrapping around to the start of the buffer
func (r *RingBuffer) storageIdx(inc int) []int {
	if r.pointer+inc <= r.size {
		idx := intutils.Arange(r.pointer, r.pointer+inc)
		r.pointer = (r.pointer + inc) % r.size
		return idx
	}

	overflow := inc - (r.size - r.pointer)
	idx := append(intutils.Arange(r.pointer, r.size),
		intutils.Arange(0, overflow)...)
	r.pointer = overflow
	return idx
}

// Pointer returns the slot that the next transition will be written to
func (r *RingBuffer) Pointer() int {
	return r.pointer
}

// SampleAll returns a copy of every transition in the buffer ordered
// by slot
func (r *RingBuffer) SampleAll() (field.Batch, error) {
	if r.currentSize == 0 {
		return nil, newError("sampleAll", ErrEmptyBuffer, "")
	}
	return r.storage.Prefix(r.currentSize), nil
}

// Sample returns batchSize transitions drawn uniformly with replacement
func (r *RingBuffer) Sample(batchSize int) (field.Batch, error) {
	if r.currentSize == 0 {
		return nil, newError("sample", ErrEmptyBuffer, "")
	}
	if batchSize < 1 {
		return nil, newError("sample", ErrShapeMismatch,
			fmt.Sprintf("batch size must be >= 1 (have %v)", batchSize))
	}

	slots := make([]int, batchSize)
	for i := range slots {
		slots[i] = r.rng.Intn(r.currentSize)
	}
	return r.storage.Gather(slots), nil
}

// Load clears the buffer and stores the transitions in an archive. The
// archive must hold a done field marking the last transition of each
// episode. If numDemo > 0, only the transitions of the first numDemo
// episodes are stored, otherwise every transition is stored.
func (r *RingBuffer) Load(path string, numDemo int) (field.Batch, error) {
	archive, err := ReadArchive(path)
	if err != nil {
		return nil, err
	}
	batch, err := archive.Batch()
	if err != nil {
		return nil, newError("load", ErrShapeMismatch, err.Error())
	}

	done, ok := batch[field.Done]
	if !ok {
		return nil, newError("load", ErrConfiguration,
			"archive has no done field")
	}

	if numDemo > 0 {
		last, err := episodeEnd(done, numDemo)
		if err != nil {
			return nil, err
		}
		for name, a := range batch {
			if a.Len() <= last {
				return nil, newError("load", ErrShapeMismatch,
					fmt.Sprintf("field %q holds %v records, expected at "+
						"least %v", name, a.Len(), last+1))
			}
			batch[name] = a.Prefix(last + 1)
		}
	}

	if err := r.restore(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// episodeEnd returns the record index of the n-th episode end marked
// in done
func episodeEnd(done *field.Array, n int) (int, error) {
	ends := 0
	for i := 0; i < done.Len(); i++ {
		for _, v := range done.Row(i) {
			if v != 0 {
				ends++
				if ends == n {
					return i, nil
				}
				break
			}
		}
	}
	return 0, newError("load", ErrConfiguration,
		fmt.Sprintf("not enough demonstration data: requested %v "+
			"episodes, archive holds %v", n, ends))
}
