package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const header = "Formatted Date,Summary,Precip Type,Temperature (C),Apparent Temperature (C),Humidity,Wind Speed (km/h),Wind Bearing (degrees),Visibility (km),Loud Cover,Pressure (millibars),Daily Summary\n"

const sample = header +
	"2006-04-01 00:00:00.000 +0200,Partly Cloudy,rain,9.47,7.38,0.89,14.11,251,15.82,0,1015.13,Partly cloudy throughout the day.\n" +
	"2006-04-01 01:00:00.000 +0200,Partly Cloudy,rain,9.35,7.22,0.86,14.26,259,15.82,0,1015.63,Partly cloudy throughout the day.\n" +
	"2006-04-01 02:00:00.000 +0200,Mostly Cloudy,,9.37,9.37,0.89,3.92,204,14.95,0,1015.94,\"Cloudy, then clearing.\"\n"

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), "sample.csv", strings.NewReader(sample))
	require.NoError(t, err)
	return ds
}

func TestLoad_ParsesRecords(t *testing.T) {
	ds := loadSample(t)

	require.Equal(t, 3, ds.Len())
	first := ds.Records()[0]
	assert.Equal(t, time.Date(2006, 3, 31, 22, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, "Partly Cloudy", first.Summary)
	assert.Equal(t, "rain", first.PrecipType)
	assert.Equal(t, 9.47, first.Temperature)
	assert.Equal(t, 7.38, first.ApparentTemperature)
	assert.Equal(t, 1015.13, first.Pressure)
	assert.Empty(t, ds.Records()[2].PrecipType)
}

func TestLoad_Bounds(t *testing.T) {
	ds := loadSample(t)

	first, last := ds.Bounds()
	assert.Equal(t, time.Date(2006, 3, 31, 22, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2006, 4, 1, 0, 0, 0, 0, time.UTC), last)
}

func TestLoad_Failures(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"header only":    header,
		"missing column": "Formatted Date,Summary\n2006-04-01 00:00:00.000 +0200,Clear\n",
		"bad date":       header + "yesterday,Clear,rain,1,1,0.5,1,1,1,0,1000,x\n",
		"bad number":     header + "2006-04-01 00:00:00.000 +0200,Clear,rain,warm,1,0.5,1,1,1,0,1000,x\n",
		"short row":      header + "2006-04-01 00:00:00.000 +0200,Clear\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ds, err := Load(context.Background(), "bad.csv", strings.NewReader(body))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, ErrDataLoad))

			var loadErr *DataLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "bad.csv", loadErr.Source)
		})
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "sample.csv", strings.NewReader(sample))
	assert.ErrorIs(t, err, ErrDataLoad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBetween(t *testing.T) {
	ds := loadSample(t)
	first, last := ds.Bounds()

	assert.Len(t, ds.Between(first, last), 3)
	assert.Len(t, ds.Between(first, first), 1)
	assert.Empty(t, ds.Between(last, first))
	assert.Empty(t, ds.Between(last.Add(time.Hour), last.Add(2*time.Hour)))
}

func TestWhereIn(t *testing.T) {
	ds := loadSample(t)

	got := ds.WhereIn(weather.VarTemperature, []float64{9.47, 9.37})
	require.Len(t, got, 2)
	assert.Equal(t, 9.47, got[0].Temperature)
	assert.Equal(t, 9.37, got[1].Temperature)

	assert.Empty(t, ds.WhereIn(weather.VarTemperature, nil))
}

func TestNew_CopiesRecords(t *testing.T) {
	recs := []weather.Record{{Temperature: 1}, {Temperature: 2}}
	ds, err := New(recs)
	require.NoError(t, err)

	recs[0].Temperature = 100
	assert.Equal(t, 1.0, ds.Records()[0].Temperature)
}
