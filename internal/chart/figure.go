// Package chart describes charts as Plotly figures and carries the
// update-or-skip result bindings hand back to the browser.
package chart

// Trace types and modes understood by the browser-side renderer.
const (
	TypeScatter = "scatter"
	TypeBar     = "bar"
	TypePie     = "pie"

	ModeLines   = "lines"
	ModeMarkers = "markers"
)

// Figure is a Plotly figure: one or more traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single data series. X holds either []string (timestamps and
// categories) or []float64.
type Trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode,omitempty"`
	Name   string    `json:"name,omitempty"`
	X      any       `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// Layout holds chart-level presentation.
type Layout struct {
	Title      *Text `json:"title,omitempty"`
	XAxis      *Axis `json:"xaxis,omitempty"`
	YAxis      *Axis `json:"yaxis,omitempty"`
	ShowLegend *bool `json:"showlegend,omitempty"`
}

// Axis is a Plotly axis definition.
type Axis struct {
	Title *Text  `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Text wraps a Plotly title.
type Text struct {
	Text string `json:"text"`
}

// Len returns the number of data points in t.
func (t Trace) Len() int {
	if t.Type == TypePie {
		return len(t.Values)
	}
	return len(t.Y)
}

// Points returns the total number of data points across all traces.
func (f Figure) Points() int {
	n := 0
	for _, t := range f.Data {
		n += t.Len()
	}
	return n
}

// Title returns the figure title, or "" when unset.
func (f Figure) Title() string {
	if f.Layout.Title == nil {
		return ""
	}
	return f.Layout.Title.Text
}

// Line builds a line trace over time-like string x values.
func Line(name string, x []string, y []float64) Trace {
	return Trace{Type: TypeScatter, Mode: ModeLines, Name: name, X: nonNilStrings(x), Y: nonNilFloats(y)}
}

// Markers builds a marker-only scatter trace.
func Markers(name string, x, y []float64) Trace {
	return Trace{Type: TypeScatter, Mode: ModeMarkers, Name: name, X: nonNilFloats(x), Y: nonNilFloats(y)}
}

// Bar builds a bar trace over categorical x values.
func Bar(name string, x []string, y []float64) Trace {
	return Trace{Type: TypeBar, Name: name, X: nonNilStrings(x), Y: nonNilFloats(y)}
}

// Pie builds a pie trace.
func Pie(name string, labels []string, values []float64) Trace {
	return Trace{Type: TypePie, Name: name, Labels: nonNilStrings(labels), Values: nonNilFloats(values)}
}

// New assembles a figure. Empty titles are left out of the layout.
func New(title, xTitle, yTitle string, traces ...Trace) Figure {
	f := Figure{Data: traces}
	if f.Data == nil {
		f.Data = []Trace{}
	}
	if title != "" {
		f.Layout.Title = &Text{Text: title}
	}
	if xTitle != "" {
		f.Layout.XAxis = &Axis{Title: &Text{Text: xTitle}}
	}
	if yTitle != "" {
		f.Layout.YAxis = &Axis{Title: &Text{Text: yTitle}}
	}
	return f
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilFloats(s []float64) []float64 {
	if s == nil {
		return []float64{}
	}
	return s
}
