package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when coercing the Formatted Date column.
// The first one is the format the historical dataset ships with.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.000 -0700",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// requiredColumns must be present in the header row.
var requiredColumns = []string{
	ColFormattedDate,
	ColSummary,
	ColPrecipType,
	ColTemperature,
	ColHumidity,
	ColWindSpeed,
	ColWindBearing,
	ColVisibility,
	ColPressure,
}

// ParseTimestamp coerces s into a UTC time. Values without an offset are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseCSV reads every row of a delimited weather file. It fails on the first
// malformed row; callers never see a partial result.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: header row missing")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	apparentIdx, hasApparent := idx[ColApparentTemperature]

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if hasApparent {
			if rec.ApparentTemperature, err = parseFloat(row, apparentIdx, ColApparentTemperature); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	ts, err := ParseTimestamp(row[idx[ColFormattedDate]])
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColFormattedDate, err)
	}

	rec := Record{
		Timestamp:  ts,
		Summary:    strings.TrimSpace(row[idx[ColSummary]]),
		PrecipType: normalizePrecip(row[idx[ColPrecipType]]),
	}

	fields := []struct {
		col string
		dst *float64
	}{
		{ColTemperature, &rec.Temperature},
		{ColHumidity, &rec.Humidity},
		{ColWindSpeed, &rec.WindSpeed},
		{ColWindBearing, &rec.WindBearing},
		{ColVisibility, &rec.Visibility},
		{ColPressure, &rec.Pressure},
	}
	for _, f := range fields {
		v, err := parseFloat(row, idx[f.col], f.col)
		if err != nil {
			return Record{}, err
		}
		*f.dst = v
	}

	return rec, nil
}

func parseFloat(row []string, i int, col string) (float64, error) {
	s := strings.TrimSpace(row[i])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: invalid number %q", col, s)
	}
	return v, nil
}

// normalizePrecip maps the null spellings pandas writes for Precip Type to "".
func normalizePrecip(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "nan", "none":
		return ""
	}
	return s
}
