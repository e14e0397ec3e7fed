package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var t0 = time.Date(2006, 4, 1, 0, 0, 0, 0, time.UTC)

func testDataset(t *testing.T) *store.Dataset {
	t.Helper()
	ds, err := store.New([]weather.Record{
		{Timestamp: t0, Temperature: 9.5, Pressure: 1015},
		{Timestamp: t0.Add(time.Hour), Temperature: 10.5, Pressure: 1016},
		{Timestamp: t0.Add(2 * time.Hour), Temperature: 12, Pressure: 1014},
	})
	require.NoError(t, err)
	return ds
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestLineWorkbook(t *testing.T) {
	b, err := LineWorkbook(testDataset(t), dashboard.LineQuery{
		Start:     t0,
		End:       t0.Add(time.Hour),
		Variables: []weather.Variable{weather.VarTemperature, weather.VarPressure},
	})
	require.NoError(t, err)

	f := open(t, b)
	assert.Equal(t, []string{"Line Chart", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Line Chart")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Formatted Date", "Temperature (C)", "Pressure (millibars)"}, rows[0])
	assert.Equal(t, []string{"2006-04-01 00:00:00", "9.5", "1015"}, rows[1])
	assert.Equal(t, []string{"2006-04-01 01:00:00", "10.5", "1016"}, rows[2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Temperature (C)", "2", "9.5", "10.5", "10"}, summary[1][:5])
}

func TestLineWorkbook_EmptyRange(t *testing.T) {
	b, err := LineWorkbook(testDataset(t), dashboard.LineQuery{
		Start:     t0.Add(time.Hour),
		End:       t0,
		Variables: []weather.Variable{weather.VarTemperature},
	})
	require.NoError(t, err)

	rows, err := open(t, b).GetRows("Line Chart")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLineWorkbook_InvalidVariables(t *testing.T) {
	_, err := LineWorkbook(testDataset(t), dashboard.LineQuery{Start: t0, End: t0})
	assert.ErrorIs(t, err, dashboard.ErrInvalidControl)
}
