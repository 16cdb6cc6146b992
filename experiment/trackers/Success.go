package trackers

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/field"
)

// Success tracks whether each episode ended at its goal, as reported
// by an info field of the episodes. An episode is successful if the
// info field is non-zero at its last step.
type Success struct {
	info     string
	success  []float64
	filename string
}

// NewSuccess creates and returns a new *Success Tracker reading the
// given info field, e.g. "is_success"
func NewSuccess(info, filename string) *Success {
	if !field.IsInfo(info) {
		info = field.InfoPrefix + info
	}
	return &Success{info: info, filename: filename}
}

// Track tracks the success of each episode in the batch
func (s *Success) Track(episodes field.Batch) error {
	info, ok := episodes[s.info]
	if !ok {
		return fmt.Errorf("track: episodes hold no field %q", s.info)
	}
	for i := 0; i < info.Len(); i++ {
		row := info.Row(i)
		success := 0.0
		if row[len(row)-1] != 0 {
			success = 1
		}
		s.success = append(s.success, success)
	}
	return nil
}

// Rate returns the fraction of the last n episodes which were
// successful. If fewer than n episodes were tracked, all are used.
func (s *Success) Rate(n int) float64 {
	if len(s.success) == 0 {
		return 0
	}
	if n > len(s.success) || n < 1 {
		n = len(s.success)
	}
	total := 0.0
	for _, v := range s.success[len(s.success)-n:] {
		total += v
	}
	return total / float64(n)
}

// Save saves the data tracked by the Success Tracker to disk.
func (s *Success) Save() error {
	return tracker.SaveData(s.filename, s.success)
}
