package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/goreplay/timestep"
)

// nStep implements checkpointing every N steps
type nStep struct {
	interval int
	last     int
	object   Dumper // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each checkpoint should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// file1.gz, file2.gz, ..., fileK.gz), then simply use the
	// static function FilenameEnumerator, which will return a function
	// that will enumerate filenames.
	//
	// Otherwise, if each checkpoint should be saved in a separate
	// file, but the filename does not matter, use the static function
	// FileTimer to generate the required naming function. For example:
	//
	// n, err := NewNStep(10, buffer, FileTimer("replay", ".gz"))
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps.
// Steps may be tracked in increments larger than one, in which case a
// checkpoint is made whenever a multiple of n is reached or passed.
func NewNStep(n int, object Dumper, filename func() string) (Checkpointer,
	error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: interval must be positive "+
			"\n\twant(>0)\n\thave(%v)", n)
	}
	if object == nil || filename == nil {
		return nil, fmt.Errorf("newNStep: object and filename must be " +
			"non-nil")
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint checkpoints the Checkpointer's tracked object by calling
// its Dump() method
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	if t.Number/n.interval <= n.last/n.interval {
		return nil
	}
	n.last = t.Number
	return n.object.Dump(n.filename())
}
