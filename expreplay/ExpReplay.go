// Package expreplay implements experience replay buffers which store
// transitions or whole episodes and serve batches of transitions for
// off-policy training, optionally relabeling goals with Hindsight
// Experience Replay.
//
// Buffers are single-writer: a single training driver calls Store and
// Sample sequentially. Buffers perform no internal locking.
package expreplay

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/buffer/storage"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/utils/intutils"
)

// Buffer implements an experience replay buffer
type Buffer interface {
	// Store stores a batch of transitions or episodes. Store either
	// fully applies the batch or returns an error before modifying
	// the buffer.
	Store(batch field.Batch) error

	// Sample returns batchSize transitions drawn with replacement.
	// The returned batch is a copy and may be freely modified.
	Sample(batchSize int) (field.Batch, error)

	// SampleAll returns a copy of every valid transition
	SampleAll() (field.Batch, error)

	// CurrentSize returns the number of valid slots in the buffer
	CurrentSize() int

	// MaxSize returns the number of slots in the buffer
	MaxSize() int

	// Full returns whether every slot in the buffer holds data
	Full() bool

	// Clear empties the buffer without releasing its storage
	Clear()

	// Dump saves the valid contents of the buffer to an archive file
	Dump(path string) error

	// Load clears the buffer and stores the contents of an archive
	// file. If numDemo > 0, only the first numDemo episodes are
	// loaded. The stored batch is returned.
	Load(path string, numDemo int) (field.Batch, error)
}

// base implements the lifecycle common to all buffers: validation,
// index allocation, writing, and size bookkeeping
type base struct {
	storage     *storage.Storage
	size        int
	currentSize int

	// allocate returns the slots to write inc records to. It is called
	// before currentSize is updated.
	allocate func(inc int) []int

	// reset clears any allocation state beyond currentSize
	reset func()

	logger zerolog.Logger
}

// newBase returns a new base buffer with size slots of the records
// described by schema
func newBase(schema field.Schema, size int, logger zerolog.Logger) (*base,
	error) {
	if size < 1 {
		return nil, newError("new", ErrConfiguration,
			"buffer must hold at least one record")
	}
	s, err := storage.New(schema, size)
	if err != nil {
		return nil, newError("new", ErrConfiguration, err.Error())
	}

	return &base{
		storage: s,
		size:    size,
		logger:  logger,
		reset:   func() {},
	}, nil
}

// validate returns the number of records in batch or an error if the
// batch cannot be stored in the buffer
func (b *base) validate(op string, batch field.Batch) (int, error) {
	n, err := batch.Len()
	if err != nil {
		return 0, newError(op, ErrShapeMismatch, err.Error())
	}
	if n < 1 {
		return 0, newError(op, ErrShapeMismatch, "invalid increment")
	}
	if n > b.size {
		return 0, newError(op, ErrCapacityExceeded,
			fmt.Sprintf("%v records exceed capacity %v", n, b.size))
	}
	if err := b.storage.Schema().Validate(batch, n); err != nil {
		return 0, newError(op, ErrShapeMismatch, err.Error())
	}
	return n, nil
}

// Store stores a batch in the buffer
func (b *base) Store(batch field.Batch) error {
	n, err := b.validate("store", batch)
	if err != nil {
		return err
	}

	indices := b.allocate(n)
	b.storage.Put(indices, batch)
	b.currentSize = intutils.Min(b.size, b.currentSize+n)

	b.logger.Debug().
		Int("stored", n).
		Int("current_size", b.currentSize).
		Int("max_size", b.size).
		Msg("stored batch")
	return nil
}

// CurrentSize returns the number of valid slots in the buffer
func (b *base) CurrentSize() int {
	return b.currentSize
}

// MaxSize returns the total number of slots in the buffer
func (b *base) MaxSize() int {
	return b.size
}

// Full returns whether every slot in the buffer holds data
func (b *base) Full() bool {
	return b.currentSize == b.size
}

// Schema returns the schema of a single slot in the buffer
func (b *base) Schema() field.Schema {
	return b.storage.Schema()
}

// Clear empties the buffer
func (b *base) Clear() {
	b.currentSize = 0
	b.reset()
	b.logger.Debug().Msg("cleared buffer")
}

// Dump saves the valid prefix of every field to an archive file. An
// empty buffer is not dumped.
func (b *base) Dump(path string) error {
	if b.currentSize == 0 {
		b.logger.Warn().Str("path", path).Msg("buffer empty, skipping dump")
		return nil
	}

	archive := newArchive(b.storage.Prefix(b.currentSize))
	if err := WriteArchive(path, archive); err != nil {
		return err
	}

	b.logger.Info().
		Str("path", path).
		Str("archive", archive.ID.String()).
		Int("records", b.currentSize).
		Msg("dumped buffer")
	return nil
}

// restore clears the buffer and stores batch. The buffer is left
// untouched if batch cannot be stored.
func (b *base) restore(batch field.Batch) error {
	if _, err := b.validate("load", batch); err != nil {
		return err
	}
	b.Clear()
	if err := b.Store(batch); err != nil {
		return err
	}
	b.logger.Info().Int("records", b.currentSize).Msg("loaded buffer")
	return nil
}
