// Package dashboard holds the reactive bindings of the weather dashboard and
// dispatches control events to them.
//
// Every binding is a pure function of the immutable dataset and the control
// snapshot it is given. Dashboard is the context object built at startup that
// carries the dataset into each invocation; it keeps no interaction history.
package dashboard

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/store"
)

// Chart placeholder ids shared with the view tree and the browser.
const (
	ChartLine    = "line-chart"
	ChartScatter = "scatter-plot"
	ChartA       = "chart-a"
	ChartB       = "chart-b"
	ChartBar     = "custom-chart"
	ChartPie     = "custom-pie-chart"
)

// Binding names used in metrics and usage reports.
const (
	BindingLine        = "line"
	BindingScatter     = "scatter"
	BindingCrossFilter = "cross_filter"
)

// Outputs maps chart ids to what should happen to them.
type Outputs map[string]chart.Result

// Dashboard wires the dataset to the bindings.
type Dashboard struct {
	data    *store.Dataset
	static  StaticFigures
	metrics *observability.Metrics
	logger  *logrus.Entry
	usage   Usage
}

// New builds the dashboard context and computes the static charts. metrics may
// be nil.
func New(ds *store.Dataset, logger *logrus.Logger, metrics *observability.Metrics) *Dashboard {
	d := &Dashboard{
		data:    ds,
		static:  BuildStatic(ds),
		metrics: metrics,
		logger:  logger.WithField("component", "dashboard"),
	}
	if metrics != nil {
		metrics.DatasetRecords.Set(float64(ds.Len()))
	}
	return d
}

// Dataset returns the dataset the dashboard reads.
func (d *Dashboard) Dataset() *store.Dataset { return d.data }

// Static returns the Custom Graph figures.
func (d *Dashboard) Static() StaticFigures { return d.static }

// InitialFigures returns the figures charts start with before any control
// event: the cross-filter pair over the full dataset and the static charts.
func (d *Dashboard) InitialFigures() map[string]chart.Figure {
	all := d.data.Records()
	return map[string]chart.Figure{
		ChartA:   TemperatureHumidity(all),
		ChartB:   WindSpeedOverTime(all),
		ChartBar: d.static.Bar,
		ChartPie: d.static.Pie,
	}
}

// Line runs the line chart binding.
func (d *Dashboard) Line(q LineQuery) (chart.Figure, error) {
	start := time.Now()
	fig, err := LineChart(d.data, q)
	if err != nil {
		d.Reject()
		return chart.Figure{}, err
	}
	d.usage.line.Add(1)
	d.observe(BindingLine, start, Outputs{ChartLine: chart.Update(fig)})
	return fig, nil
}

// Scatter runs the scatter plot binding.
func (d *Dashboard) Scatter(q ScatterQuery) (ScatterResult, error) {
	start := time.Now()
	res, err := ScatterPlot(d.data, q)
	if err != nil {
		d.Reject()
		return ScatterResult{}, err
	}
	d.usage.scatter.Add(1)
	d.observe(BindingScatter, start, Outputs{ChartScatter: chart.Update(res.Figure)})
	return res, nil
}

// CrossFilter runs the cross-filter binding.
func (d *Dashboard) CrossFilter(in Interaction) (a, b chart.Result) {
	start := time.Now()
	a, b = CrossFilter(d.data, in)
	d.usage.crossFilter.Add(1)
	d.observe(BindingCrossFilter, start, Outputs{ChartA: a, ChartB: b})
	d.logger.WithFields(logrus.Fields{
		"interaction": in.State.String(),
		"outcome":     Transition(in).String(),
	}).Debug("cross filter")
	return a, b
}

// Handle dispatches ev to the binding that depends on it and returns the
// result for every chart that binding outputs.
func (d *Dashboard) Handle(ev Event) (Outputs, error) {
	switch e := ev.(type) {
	case DateRangeChanged:
		return d.lineOutputs(e.Query)
	case DropdownChanged:
		return d.lineOutputs(e.Query)
	case RadioChanged:
		res, err := d.Scatter(ScatterQuery{Variable: e.Variable})
		if err != nil {
			return nil, err
		}
		return Outputs{ChartScatter: chart.Update(res.Figure)}, nil
	}

	in, ok := interactionOf(ev)
	if !ok {
		d.Reject()
		return nil, fmt.Errorf("%w: unhandled event %T", ErrInvalidEvent, ev)
	}
	a, b := d.CrossFilter(in)
	return Outputs{ChartA: a, ChartB: b}, nil
}

func (d *Dashboard) lineOutputs(q LineQuery) (Outputs, error) {
	fig, err := d.Line(q)
	if err != nil {
		return nil, err
	}
	return Outputs{ChartLine: chart.Update(fig)}, nil
}

// Reject records a control event that was turned away.
func (d *Dashboard) Reject() {
	d.usage.rejected.Add(1)
	if d.metrics != nil {
		d.metrics.EventsRejected.Inc()
	}
}

// Usage returns a snapshot of the invocation counters.
func (d *Dashboard) Usage() UsageSnapshot { return d.usage.snapshot() }

func (d *Dashboard) observe(binding string, start time.Time, out Outputs) {
	if d.metrics == nil {
		return
	}
	d.metrics.BindingDuration.WithLabelValues(binding).Observe(time.Since(start).Seconds())
	for id, r := range out {
		d.metrics.BindingInvocations.WithLabelValues(binding, id, string(r.Action())).Inc()
	}
}

// Usage counts binding invocations since startup.
type Usage struct {
	line        atomic.Int64
	scatter     atomic.Int64
	crossFilter atomic.Int64
	rejected    atomic.Int64
}

// UsageSnapshot is a point-in-time copy of Usage.
type UsageSnapshot struct {
	Line        int64 `json:"line"`
	Scatter     int64 `json:"scatter"`
	CrossFilter int64 `json:"crossFilter"`
	Rejected    int64 `json:"rejected"`
}

func (u *Usage) snapshot() UsageSnapshot {
	return UsageSnapshot{
		Line:        u.line.Load(),
		Scatter:     u.scatter.Load(),
		CrossFilter: u.crossFilter.Load(),
		Rejected:    u.rejected.Load(),
	}
}

// Total is the number of successful binding invocations.
func (s UsageSnapshot) Total() int64 { return s.Line + s.Scatter + s.CrossFilter }
