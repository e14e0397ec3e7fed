package dashboard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// ErrInvalidControl is returned when a control value is outside its allowed set.
var ErrInvalidControl = errors.New("invalid control value")

// LineQuery is the line chart's control snapshot.
type LineQuery struct {
	Start     time.Time
	End       time.Time
	Variables []weather.Variable `validate:"required,min=1,dive,oneof=temperature wind_speed wind_bearing pressure"`
}

// Validate checks the selected variables against the dropdown's options.
func (q LineQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidControl, err)
	}
	return nil
}

// ScatterQuery is the scatter plot's control snapshot.
type ScatterQuery struct {
	Variable weather.Variable `validate:"required,oneof=temperature humidity pressure"`
}

// ScatterResult is the scatter plot figure plus the correlation shown in its title.
type ScatterResult struct {
	Figure      chart.Figure
	Correlation float64 // NaN when undefined
}

const timestampFormat = time.RFC3339

// LineChart draws one line per selected variable over records with timestamps
// in [q.Start, q.End]. A range that matches nothing, including Start after
// End, yields traces without points.
func LineChart(ds *store.Dataset, q LineQuery) (chart.Figure, error) {
	if err := q.Validate(); err != nil {
		return chart.Figure{}, err
	}

	records := ds.Between(q.Start, q.End)
	x := timestamps(records)

	traces := make([]chart.Trace, 0, len(q.Variables))
	for _, v := range q.Variables {
		traces = append(traces, chart.Line(v.Label(), x, weather.Column(records, v)))
	}
	return chart.New("", weather.ColFormattedDate, "value", traces...), nil
}

// ScatterPlot plots wind speed against q.Variable over the full dataset and
// titles the figure with their Pearson correlation.
func ScatterPlot(ds *store.Dataset, q ScatterQuery) (ScatterResult, error) {
	if err := validate.Struct(q); err != nil {
		return ScatterResult{}, fmt.Errorf("%w: %v", ErrInvalidControl, err)
	}

	wind := ds.Column(weather.VarWindSpeed)
	other := ds.Column(q.Variable)
	r := weather.Correlation(wind, other)

	title := fmt.Sprintf("Correlation of %s vs %s: %s", weather.ColWindSpeed, q.Variable.Label(), formatCorrelation(r))
	fig := chart.New(title, weather.ColWindSpeed, q.Variable.Label(), chart.Markers("", wind, other))
	return ScatterResult{Figure: fig, Correlation: r}, nil
}

func formatCorrelation(r float64) string {
	if math.IsNaN(r) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", r)
}

// TemperatureHumidity is chart A of the interactive tab.
func TemperatureHumidity(records []weather.Record) chart.Figure {
	return chart.New("", weather.ColTemperature, weather.ColHumidity,
		chart.Markers("", weather.Column(records, weather.VarTemperature), weather.Column(records, weather.VarHumidity)))
}

// WindSpeedOverTime is chart B of the interactive tab.
func WindSpeedOverTime(records []weather.Record) chart.Figure {
	return chart.New("", weather.ColFormattedDate, weather.ColWindSpeed,
		chart.Line(weather.ColWindSpeed, timestamps(records), weather.Column(records, weather.VarWindSpeed)))
}

// StaticFigures are the two Custom Graph charts, computed once.
type StaticFigures struct {
	Bar chart.Figure
	Pie chart.Figure
}

// BuildStatic pairs every record's summary with its humidity (bar) and
// temperature (pie). Values are plotted per record, not grouped.
func BuildStatic(ds *store.Dataset) StaticFigures {
	records := ds.Records()

	barX, barY := weather.SummaryPairs(records, weather.VarHumidity)
	pieLabels, pieValues := weather.SummaryPairs(records, weather.VarTemperature)

	return StaticFigures{
		Bar: chart.New("Humidity Vs Weather Summary", weather.ColSummary, weather.ColHumidity,
			chart.Bar(weather.ColHumidity, barX, barY)),
		Pie: chart.New("Temperature Against to the Summary", "", "",
			chart.Pie(weather.ColTemperature, pieLabels, pieValues)),
	}
}

func timestamps(records []weather.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Timestamp.Format(timestampFormat)
	}
	return out
}
