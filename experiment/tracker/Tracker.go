// Package tracker outlines Trackers, which track and save data
// generated in an experiment
package tracker

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/goreplay/field"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished. Each call to Track receives a
// batch of whole episodes.
type Tracker interface {
	Track(episodes field.Batch) error
	Save() error
}

// SaveData gob-encodes data to filename
func SaveData(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not open save file")
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return errors.Wrap(err, "could not encode data")
	}
	return nil
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not open data file")
	}
	defer file.Close()

	// Decode the data
	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, errors.Wrap(err, "could not decode data")
	}
	return data, nil
}
