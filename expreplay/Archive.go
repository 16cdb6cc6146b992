package expreplay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/goreplay/field"
)

// Archive is the on-disk representation of the contents of a buffer.
// It holds one array per field, all sharing the same leading
// dimension.
type Archive struct {
	ID      uuid.UUID
	Created time.Time
	Fields  []ArchiveField
}

// ArchiveField is a single named array in an Archive
type ArchiveField struct {
	Name  string
	Shape []int
	Data  []float64
}

// newArchive returns a new Archive holding the fields of batch
func newArchive(batch field.Batch) *Archive {
	a := &Archive{
		ID:      uuid.New(),
		Created: time.Now().UTC(),
	}
	for _, name := range batch.Names() {
		a.Fields = append(a.Fields, ArchiveField{
			Name:  name,
			Shape: batch[name].Shape(),
			Data:  batch[name].Data(),
		})
	}
	return a
}

// NewArchive returns a new Archive holding a copy of batch. All fields
// of the batch must share the same leading dimension.
func NewArchive(batch field.Batch) (*Archive, error) {
	if _, err := batch.Len(); err != nil {
		return nil, newError("newArchive", ErrShapeMismatch, err.Error())
	}
	return newArchive(batch.Clone()), nil
}

// Len returns the number of records in the Archive
func (a *Archive) Len() int {
	if len(a.Fields) == 0 || len(a.Fields[0].Shape) == 0 {
		return 0
	}
	return a.Fields[0].Shape[0]
}

// Batch returns the fields of the Archive as a Batch. The Batch shares
// memory with the Archive.
func (a *Archive) Batch() (field.Batch, error) {
	batch := make(field.Batch, len(a.Fields))
	for _, f := range a.Fields {
		if _, ok := batch[f.Name]; ok {
			return nil, fmt.Errorf("batch: duplicate field %q", f.Name)
		}
		arr, err := field.NewArray(f.Shape, f.Data)
		if err != nil {
			return nil, fmt.Errorf("batch: field %q: %v", f.Name, err)
		}
		batch[f.Name] = arr
	}
	return batch, nil
}

// WriteArchive gob-encodes and compresses an Archive to path
func WriteArchive(path string, a *Archive) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "writeArchive: could not create %v", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "writeArchive: could not close %v", path)
		}
	}()

	zw := gzip.NewWriter(file)
	if err := gob.NewEncoder(zw).Encode(a); err != nil {
		return errors.Wrapf(err, "writeArchive: could not encode %v", path)
	}
	return errors.Wrapf(zw.Close(), "writeArchive: could not flush %v", path)
}

// ReadArchive reads an Archive written by WriteArchive. All fields of
// the returned Archive are guaranteed to share their leading
// dimension.
func ReadArchive(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "readArchive: could not open %v", path)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "readArchive: could not decompress %v",
			path)
	}
	defer zr.Close()

	var a Archive
	if err := gob.NewDecoder(zr).Decode(&a); err != nil {
		return nil, errors.Wrapf(err, "readArchive: could not decode %v", path)
	}

	if len(a.Fields) == 0 {
		return nil, newError("readArchive", ErrShapeMismatch,
			fmt.Sprintf("archive %v holds no fields", path))
	}
	batch, err := a.Batch()
	if err != nil {
		return nil, newError("readArchive", ErrShapeMismatch, err.Error())
	}
	if _, err := batch.Len(); err != nil {
		return nil, newError("readArchive", ErrShapeMismatch, err.Error())
	}
	return &a, nil
}
