package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrDataLoad is matched by every DataLoadError.
	ErrDataLoad = errors.New("weather dataset could not be loaded")
)

// DataLoadError reports why the dataset could not be loaded. Loading is
// all-or-nothing, so a DataLoadError always means no dataset exists.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDataLoad) match any DataLoadError.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// NewDataLoadError wraps err as a DataLoadError for source.
func NewDataLoadError(source string, err error) error {
	return &DataLoadError{Source: source, Err: err}
}

// Dataset is the immutable in-memory weather table. It is built once by Load
// and never mutated, so concurrent readers need no locking.
type Dataset struct {
	records []weather.Record
	min     time.Time
	max     time.Time
}

// Load parses a whole weather file from r.
func Load(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewDataLoadError(source, err)
	}
	records, err := weather.ParseCSV(r)
	if err != nil {
		return nil, NewDataLoadError(source, err)
	}
	ds, err := New(records)
	if err != nil {
		return nil, NewDataLoadError(source, err)
	}
	return ds, nil
}

// New builds a Dataset from already parsed records. The slice is copied.
func New(records []weather.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.New("dataset has no records")
	}

	ds := &Dataset{
		records: append([]weather.Record(nil), records...),
		min:     records[0].Timestamp,
		max:     records[0].Timestamp,
	}
	for _, r := range ds.records[1:] {
		if r.Timestamp.Before(ds.min) {
			ds.min = r.Timestamp
		}
		if r.Timestamp.After(ds.max) {
			ds.max = r.Timestamp
		}
	}
	return ds, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns all records in source order. Callers must not modify the
// returned slice.
func (d *Dataset) Records() []weather.Record { return d.records }

// Bounds returns the earliest and latest timestamps in the dataset.
func (d *Dataset) Bounds() (first, last time.Time) { return d.min, d.max }

// Column returns the values of v over the full dataset.
func (d *Dataset) Column(v weather.Variable) []float64 {
	return weather.Column(d.records, v)
}

// Between returns the records with timestamps in [from, to] (inclusive).
// When from is after to the result is empty.
func (d *Dataset) Between(from, to time.Time) []weather.Record {
	var result []weather.Record
	if from.After(to) {
		return result
	}
	for _, r := range d.records {
		if (r.Timestamp.Equal(from) || r.Timestamp.After(from)) &&
			(r.Timestamp.Equal(to) || r.Timestamp.Before(to)) {
			result = append(result, r)
		}
	}
	return result
}

// WhereIn returns the records whose value of v exactly equals one of values.
func (d *Dataset) WhereIn(v weather.Variable, values []float64) []weather.Record {
	set := make(map[float64]struct{}, len(values))
	for _, x := range values {
		set[x] = struct{}{}
	}

	var result []weather.Record
	for _, r := range d.records {
		if _, ok := set[r.Value(v)]; ok {
			result = append(result, r)
		}
	}
	return result
}
