// Package export turns the line chart's current selection into a spreadsheet
// download.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	dataSheet    = "Line Chart"
	summarySheet = "Summary"
	cellTime     = "2006-01-02 15:04:05"
)

// LineWorkbook writes the records in [q.Start, q.End] and the selected
// variables to an xlsx file, plus a summary sheet with per-variable
// statistics.
func LineWorkbook(ds *store.Dataset, q dashboard.LineQuery) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	records := ds.Between(q.Start, q.End)

	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:       "Weather Line Chart Export",
		Subject:     "Historical weather data",
		Creator:     "weather-dashboard",
		Description: fmt.Sprintf("Records from %s to %s", q.Start.Format("2006-01-02"), q.End.Format("2006-01-02")),
		Created:     time.Now().UTC().Format(time.RFC3339),
	})

	if err := writeData(f, records, q.Variables); err != nil {
		return nil, fmt.Errorf("failed to create data sheet: %w", err)
	}
	if err := writeSummary(f, records, q.Variables); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeData(f *excelize.File, records []weather.Record, vars []weather.Variable) error {
	idx, err := f.NewSheet(dataSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	header := []interface{}{weather.ColFormattedDate}
	for _, v := range vars {
		header = append(header, v.Label())
	}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{r.Timestamp.Format(cellTime)}
		for _, v := range vars {
			row = append(row, r.Value(v))
		}
		if err := f.SetSheetRow(dataSheet, cell(1, i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(dataSheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetPanes(dataSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, records []weather.Record, vars []weather.Variable) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	header := []interface{}{"Variable", "Count", "Min", "Max", "Mean", "Std Dev"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	for i, v := range vars {
		col := weather.Column(records, v)
		row := []interface{}{v.Label(), len(col)}
		if len(col) > 0 {
			lo, hi := bounds(col)
			mean, std := stat.MeanStdDev(col, nil)
			row = append(row, lo, hi, mean)
			if len(col) > 1 {
				row = append(row, std)
			}
		}
		if err := f.SetSheetRow(summarySheet, cell(1, i+2), &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 24)
}

func bounds(xs []float64) (lo, hi float64) {
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
